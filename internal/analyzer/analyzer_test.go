package analyzer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"FOODLENS_BACK-END/internal/gemini"
	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/utils"
)

type fakeGenerator struct {
	out    *gemini.Output
	err    error
	schema bool

	prompt string
	image  models.ImagePart
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, image models.ImagePart) (*gemini.Output, error) {
	f.prompt = prompt
	f.image = image
	return f.out, f.err
}

func (f *fakeGenerator) SchemaConstrained() bool { return f.schema }

var image = models.ImagePart{Data: []byte("fake-jpeg"), MIMEType: "image/jpeg"}

func requireAppError(t *testing.T, err error, kind utils.ErrorKind) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %T", err)
	assert.Equal(t, kind, appErr.Kind)
	return appErr
}

func TestAnalyzeSchemaMode(t *testing.T) {
	gen := &fakeGenerator{
		schema: true,
		out:    &gemini.Output{Text: `{"nama_makanan":"Rendang","jumlah_kalori":468,"bahan_utama":["daging sapi","santan","cabai"]}`},
	}

	result, err := New(gen).Analyze(context.Background(), image)
	require.NoError(t, err)

	assert.Equal(t, "Rendang", result.NamaMakanan)
	assert.Equal(t, 468.0, result.JumlahKalori)
	assert.Equal(t, models.Ingredients{"daging sapi", "santan", "cabai"}, result.BahanUtama)
	assert.Equal(t, Prompt, gen.prompt)
	assert.Equal(t, image, gen.image)
}

func TestAnalyzePromptModeStripsFence(t *testing.T) {
	gen := &fakeGenerator{
		out: &gemini.Output{Text: "Berikut analisisnya:\n```json\n{\"nama_makanan\":\"Gado-gado\",\"jumlah_kalori\":350,\"bahan_utama\":[\"sayuran\",\"bumbu kacang\"]}\n```"},
	}

	result, err := New(gen).Analyze(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, "Gado-gado", result.NamaMakanan)
}

func TestAnalyzeSchemaModeDoesNotStripFence(t *testing.T) {
	gen := &fakeGenerator{
		schema: true,
		out:    &gemini.Output{Text: "```json\n{\"nama_makanan\":\"Soto\",\"jumlah_kalori\":300,\"bahan_utama\":[\"ayam\"]}\n```"},
	}

	_, err := New(gen).Analyze(context.Background(), image)
	requireAppError(t, err, utils.KindResponseParse)
}

func TestAnalyzeUnclearImage(t *testing.T) {
	gen := &fakeGenerator{
		out: &gemini.Output{Text: `{"nama_makanan":"tidak_jelas","jumlah_kalori":0,"bahan_utama":"Gambar buram berisi tangan seseorang"}`},
	}

	result, err := New(gen).Analyze(context.Background(), image)
	require.NoError(t, err)
	assert.True(t, result.IsUnclear())
	assert.Equal(t, models.Ingredients{"Gambar buram berisi tangan seseorang"}, result.BahanUtama)
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	raw := &genai.GenerateContentResponse{}
	gen := &fakeGenerator{out: &gemini.Output{Text: "", Raw: raw}}

	_, err := New(gen).Analyze(context.Background(), image)
	appErr := requireAppError(t, err, utils.KindUpstreamEmpty)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Same(t, raw, appErr.Details)
}

func TestAnalyzeMalformedJSON(t *testing.T) {
	gen := &fakeGenerator{out: &gemini.Output{Text: "Maaf, saya tidak dapat membantu."}}

	_, err := New(gen).Analyze(context.Background(), image)
	appErr := requireAppError(t, err, utils.KindResponseParse)

	failure, ok := appErr.Details.(ParseFailure)
	require.True(t, ok)
	assert.Equal(t, "Maaf, saya tidak dapat membantu.", failure.CleanedText)
	assert.NotEmpty(t, failure.ParseError)
}

func TestAnalyzeMissingField(t *testing.T) {
	gen := &fakeGenerator{out: &gemini.Output{Text: `{"nama_makanan":"Bakso","jumlah_kalori":300}`}}

	_, err := New(gen).Analyze(context.Background(), image)
	appErr := requireAppError(t, err, utils.KindResponseParse)
	assert.Contains(t, appErr.Details.(ParseFailure).ParseError, "bahan_utama")
}

func TestAnalyzeUpstreamError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: i/o timeout")}

	_, err := New(gen).Analyze(context.Background(), image)
	appErr := requireAppError(t, err, utils.KindUpstreamCall)
	assert.Equal(t, "dial tcp: i/o timeout", appErr.Details)
}

func TestAnalyzeUpstreamAppErrorPassesThrough(t *testing.T) {
	upstream := utils.NewAppError(utils.KindUpstreamCall, "Failed to call the AI model", "quota exceeded")
	gen := &fakeGenerator{err: upstream}

	_, err := New(gen).Analyze(context.Background(), image)
	appErr := requireAppError(t, err, utils.KindUpstreamCall)
	assert.Same(t, upstream, appErr)
}
