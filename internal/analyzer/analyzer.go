package analyzer

import (
	"context"
	"errors"

	"github.com/apex/log"

	"FOODLENS_BACK-END/internal/gemini"
	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/utils"
)

// Prompt is the fixed instruction sent with every image
const Prompt = `Analisis gambar makanan ini.
Identifikasi nama makanan, perkiraan jumlah kalori, dan daftar bahan utamanya.
Jika gambar tidak jelas atau bukan makanan, isi "nama_makanan" dengan "tidak_jelas", isi "jumlah_kalori" dengan 0, dan isi "bahan_utama" dengan deskripsi singkat tentang isi gambar.
Balas hanya dengan JSON murni dalam format berikut:
{
  "nama_makanan": "string",
  "jumlah_kalori": number,
  "bahan_utama": ["string", "..."]
}`

// Generator is the model call the analyzer depends on
type Generator interface {
	Generate(ctx context.Context, prompt string, image models.ImagePart) (*gemini.Output, error)
	SchemaConstrained() bool
}

// Analyzer turns an uploaded image into a FoodAnalysisResult
type Analyzer struct {
	model Generator
}

// New creates a new Analyzer instance
func New(model Generator) *Analyzer {
	return &Analyzer{model: model}
}

// ParseFailure is the diagnostic payload of a ResponseParseError
type ParseFailure struct {
	CleanedText string `json:"cleaned_text"`
	ParseError  string `json:"parse_error"`
}

// Analyze asks the model about image and returns the parsed result.
// Every failure is an *utils.AppError.
func (a *Analyzer) Analyze(ctx context.Context, image models.ImagePart) (*models.FoodAnalysisResult, error) {
	out, err := a.model.Generate(ctx, Prompt, image)
	if err != nil {
		log.WithError(err).Error("model call failed")
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, utils.NewAppError(utils.KindUpstreamCall, "Failed to call the AI model", err.Error()).Wrap(err)
	}

	if out == nil || out.Text == "" {
		var raw any
		if out != nil {
			raw = out.Raw
		}
		log.Warn("model returned an empty response")
		return nil, utils.NewAppError(utils.KindUpstreamEmpty, "AI model returned an empty response", raw)
	}

	text := out.Text
	if !a.model.SchemaConstrained() {
		text = ExtractJSON(text)
	}

	result, err := models.ParseFoodAnalysisResult([]byte(text))
	if err != nil {
		log.WithError(err).WithField("text", text).Warn("failed to parse model response")
		return nil, utils.NewAppError(utils.KindResponseParse, "Failed to parse AI model response", ParseFailure{
			CleanedText: text,
			ParseError:  err.Error(),
		}).Wrap(err)
	}

	log.WithFields(log.Fields{
		"nama_makanan":  result.NamaMakanan,
		"jumlah_kalori": result.JumlahKalori,
		"unclear":       result.IsUnclear(),
	}).Info("food analyzed")

	return result, nil
}
