package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// UnclearFoodName is returned by the model when the image cannot be identified.
// BahanUtama then holds a free-text description of the image.
const UnclearFoodName = "tidak_jelas"

// Ingredients decodes from a JSON array of strings or from a single string
type Ingredients []string

func (in *Ingredients) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*in = Ingredients{}
			return nil
		}
		*in = Ingredients{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*in = Ingredients(list)
	return nil
}

// FoodAnalysisResult is the structured answer for one analyzed image
type FoodAnalysisResult struct {
	NamaMakanan  string      `json:"nama_makanan"`
	JumlahKalori float64     `json:"jumlah_kalori"`
	BahanUtama   Ingredients `json:"bahan_utama"`
}

// IsUnclear reports whether the model could not identify the food
func (r *FoodAnalysisResult) IsUnclear() bool {
	return r.NamaMakanan == UnclearFoodName
}

// rawFoodAnalysisResult tracks which fields were present in the payload
type rawFoodAnalysisResult struct {
	NamaMakanan  *string      `json:"nama_makanan"`
	JumlahKalori *float64     `json:"jumlah_kalori"`
	BahanUtama   *Ingredients `json:"bahan_utama"`
}

// ParseFoodAnalysisResult decodes payload and requires all three fields
func ParseFoodAnalysisResult(payload []byte) (*FoodAnalysisResult, error) {
	var raw rawFoodAnalysisResult
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	var missing []string
	if raw.NamaMakanan == nil || strings.TrimSpace(*raw.NamaMakanan) == "" {
		missing = append(missing, "nama_makanan")
	}
	if raw.JumlahKalori == nil {
		missing = append(missing, "jumlah_kalori")
	}
	if raw.BahanUtama == nil || len(*raw.BahanUtama) == 0 {
		missing = append(missing, "bahan_utama")
	}
	if len(missing) > 0 {
		return nil, errors.New("missing required fields: " + strings.Join(missing, ", "))
	}

	return &FoodAnalysisResult{
		NamaMakanan:  *raw.NamaMakanan,
		JumlahKalori: *raw.JumlahKalori,
		BahanUtama:   *raw.BahanUtama,
	}, nil
}

// ImagePart is an uploaded image held in memory for a single request
type ImagePart struct {
	Data     []byte
	MIMEType string
}
