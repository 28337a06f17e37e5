package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"FOODLENS_BACK-END/internal/dto"
	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/utils"
)

// FoodImageField is the multipart field carrying the uploaded image
const FoodImageField = "foodImage"

// FoodAnalyzer analyzes one in-memory image
type FoodAnalyzer interface {
	Analyze(ctx context.Context, image models.ImagePart) (*models.FoodAnalysisResult, error)
}

// FoodHandler handles image analysis requests
type FoodHandler struct {
	analyzer       FoodAnalyzer
	maxUploadBytes int64
}

// NewFoodHandler creates a new FoodHandler instance
func NewFoodHandler(analyzer FoodAnalyzer, maxUploadBytes int64) *FoodHandler {
	return &FoodHandler{analyzer: analyzer, maxUploadBytes: maxUploadBytes}
}

// AnalyzeFood handles food image analysis
// @Summary Analyze a food image
// @Description Identify the food, estimate calories and list main ingredients of an uploaded image
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param foodImage formData file true "Food image"
// @Success 200 {object} dto.AnalyzeFoodResponse "Analysis result"
// @Failure 400 {object} utils.ErrorResponse "No image uploaded"
// @Failure 500 {object} utils.ErrorResponse "AI model failure"
// @Router /analyze-food [post]
func (h *FoodHandler) AnalyzeFood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	image, err := readImagePart(r, FoodImageField)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), *image)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AnalyzeFoodResponse{
		Success: true,
		Data:    result,
	})
}

// readImagePart streams the multipart body and keeps the named file part in memory
func readImagePart(r *http.Request, field string) (*models.ImagePart, error) {
	noFile := utils.NewAppError(utils.KindValidation, "No image uploaded", fmt.Sprintf("multipart field %q is required", field))

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, noFile
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, noFile
		}
		if err != nil {
			return nil, uploadError(err)
		}

		if part.FormName() != field || part.FileName() == "" {
			part.Close()
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, uploadError(err)
		}
		if len(data) == 0 {
			return nil, utils.NewAppError(utils.KindValidation, "Uploaded image is empty", nil)
		}

		mimeType := detectMIMEType(part.Header.Get("Content-Type"), data)
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, utils.NewAppError(utils.KindValidation, "Uploaded file is not an image", mimeType)
		}

		return &models.ImagePart{Data: data, MIMEType: mimeType}, nil
	}
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return utils.NewAppError(utils.KindValidation, "Uploaded image is too large",
			fmt.Sprintf("limit is %d bytes", maxErr.Limit)).Wrap(err)
	}
	return utils.NewAppError(utils.KindValidation, "Malformed multipart body", err.Error()).Wrap(err)
}

// detectMIMEType trusts a specific declared type and sniffs the bytes otherwise
func detectMIMEType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
		return mediaType
	}
	return mimetype.Detect(data).String()
}
