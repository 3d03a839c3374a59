package handler

import (
	"strings"
	"time"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/service"
	dErrors "phytoguard/pkg/domerrors"
)

// CheckRequest is the HTTP request body for POST /compliance/check.
type CheckRequest struct {
	PracticeType    string                     `json:"practice_type"`
	Location        string                     `json:"location,omitempty"`
	CropCode        string                     `json:"crop_code,omitempty"`
	FieldSizeHa     *float64                   `json:"field_size_ha,omitempty"`
	ApplicationDate *time.Time                 `json:"application_date,omitempty"`
	Impact          *EnvironmentalImpactPayload `json:"environmental_impact,omitempty"`
	ProductIDs      []string                   `json:"product_ids,omitempty"`

	// Parsed values (populated by Validate)
	parsed service.CheckRequest
}

// EnvironmentalImpactPayload is the environmental block of the request body.
type EnvironmentalImpactPayload struct {
	WaterDistanceM   *float64 `json:"water_distance_m,omitempty"`
	WaterBodyType    string   `json:"water_body_type,omitempty"`
	WaterBodyWidthM  *float64 `json:"water_body_width_m,omitempty"`
	EquipmentTier    string   `json:"equipment_tier,omitempty"`
	VegetationBuffer bool     `json:"vegetation_buffer,omitempty"`
}

// Validate validates and parses the request into its domain form.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	practice, err := models.ParsePracticeType(strings.TrimSpace(r.PracticeType))
	if err != nil {
		return err
	}

	impact := models.EnvironmentalImpact{
		WaterBodyType: models.WaterBodyUnknown,
		EquipmentTier: models.EquipmentNone,
	}
	if r.Impact != nil {
		impact.WaterDistanceM = r.Impact.WaterDistanceM
		impact.WaterBodyWidthM = r.Impact.WaterBodyWidthM
		impact.VegetationBuffer = r.Impact.VegetationBuffer
		impact.WaterBodyType = models.ParseWaterBodyType(strings.TrimSpace(r.Impact.WaterBodyType))

		tier, err := models.ParseEquipmentTier(strings.TrimSpace(r.Impact.EquipmentTier))
		if err != nil {
			return err
		}
		impact.EquipmentTier = tier
	}

	r.parsed = service.CheckRequest{
		PracticeType:    practice,
		Location:        strings.TrimSpace(r.Location),
		CropCode:        strings.TrimSpace(r.CropCode),
		FieldSizeHa:     r.FieldSizeHa,
		ApplicationDate: r.ApplicationDate,
		Impact:          impact,
		ProductIDs:      r.ProductIDs,
	}
	return r.parsed.Validate()
}

// Parsed returns the validated domain request.
func (r *CheckRequest) Parsed() service.CheckRequest {
	return r.parsed
}
