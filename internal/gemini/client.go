package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"FOODLENS_BACK-END/internal/config"
	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/utils"
)

// Output is the raw answer of one generateContent call
type Output struct {
	Text string
	Raw  *genai.GenerateContentResponse
}

// Client is the single call boundary to the Gemini API
type Client struct {
	genai   *genai.Client
	model   string
	mode    string
	timeout time.Duration
}

// NewClient creates a Gemini client from configuration
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	return newClient(ctx, cfg, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newClient(ctx context.Context, cfg config.GeminiConfig, cc *genai.ClientConfig) (*Client, error) {
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		genai:   gc,
		model:   cfg.Model,
		mode:    cfg.ResponseMode,
		timeout: cfg.Timeout,
	}, nil
}

// NewClientWithHTTP points the client at a custom endpoint
func NewClientWithHTTP(ctx context.Context, cfg config.GeminiConfig, baseURL string, httpClient *http.Client) (*Client, error) {
	return newClient(ctx, cfg, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
}

// SchemaConstrained reports whether output is requested as schema-bound JSON
func (c *Client) SchemaConstrained() bool {
	return c.mode == config.ResponseModeSchema
}

// Generate sends the prompt and one inline image and returns the model text.
// Failures reaching the model come back as UpstreamCallError.
func (c *Client) Generate(ctx context.Context, prompt string, image models.ImagePart) (*Output, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image.Data, image.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, c.generateConfig())
	if err != nil {
		return nil, utils.NewAppError(utils.KindUpstreamCall, "Failed to call the AI model", err.Error()).Wrap(err)
	}

	return &Output{Text: resp.Text(), Raw: resp}, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	if !c.SchemaConstrained() {
		return nil
	}
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   FoodAnalysisSchema(),
	}
}

// FoodAnalysisSchema describes models.FoodAnalysisResult
func FoodAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"nama_makanan": {
				Type:        genai.TypeString,
				Description: "Nama makanan, atau \"tidak_jelas\" jika tidak dapat dikenali",
			},
			"jumlah_kalori": {
				Type:        genai.TypeNumber,
				Description: "Perkiraan jumlah kalori (kkal)",
			},
			"bahan_utama": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Daftar bahan utama, atau deskripsi gambar jika tidak jelas",
			},
		},
		Required: []string{"nama_makanan", "jumlah_kalori", "bahan_utama"},
	}
}
