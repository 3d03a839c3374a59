package handler

import (
	"time"

	"phytoguard/internal/compliance/models"
)

// CheckResponse is the HTTP response for POST /compliance/check.
type CheckResponse struct {
	ReportID             string                  `json:"report_id"`
	OverallCompliance    string                  `json:"overall_compliance"`
	WaterBody            *WaterBodyResponse      `json:"water_body,omitempty"`
	Requirements         []RequirementResponse   `json:"requirements"`
	Profiles             []ProfileResponse       `json:"profiles,omitempty"`
	Risk                 RiskResponse            `json:"risk"`
	Recommendations      []string                `json:"recommendations,omitempty"`
	CriticalWarnings     []string                `json:"critical_warnings,omitempty"`
	SeasonalRestrictions []string                `json:"seasonal_restrictions,omitempty"`
	Warnings             []string                `json:"warnings,omitempty"`
	Degraded             bool                    `json:"degraded,omitempty"`
	GeneratedAt          time.Time               `json:"generated_at"`
}

// WaterBodyResponse is the water-body classification portion of the response.
type WaterBodyResponse struct {
	Type              string  `json:"type"`
	BaseDistanceM     float64 `json:"base_distance_m"`
	ReductionAllowed  bool    `json:"reduction_allowed"`
	SpecialProtection string  `json:"special_protection,omitempty"`
	DrinkingSource    bool    `json:"drinking_source"`
	FishBearing       bool    `json:"fish_bearing"`
}

// RequirementResponse is one consolidated buffer requirement on the wire.
type RequirementResponse struct {
	BufferType          string   `json:"buffer_type"`
	RequiredDistanceM   float64  `json:"required_distance_m"`
	ActualDistanceM     *float64 `json:"actual_distance_m,omitempty"`
	ReducedDistanceM    float64  `json:"reduced_distance_m"`
	ReductionApplied    bool     `json:"reduction_applied"`
	ReductionConditions []string `json:"reduction_conditions,omitempty"`
	FloorDistanceM      float64  `json:"floor_distance_m"`
	Compliance          string   `json:"compliance"`
	SourceProductID     string   `json:"source_product_id,omitempty"`
}

// ProfileResponse is one product hazard profile on the wire.
type ProfileResponse struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name,omitempty"`
	CMR             bool   `json:"cmr"`
	AquaticToxicity string `json:"aquatic_toxicity"`
	BeeToxicity     string `json:"bee_toxicity"`
}

// RiskResponse is the risk assessment portion of the response.
type RiskResponse struct {
	Level   string   `json:"level"`
	Score   float64  `json:"score"`
	Factors []string `json:"factors,omitempty"`
}

// FromReport converts a domain ComplianceReport to an HTTP response.
func FromReport(report *models.ComplianceReport) *CheckResponse {
	resp := &CheckResponse{
		ReportID:             report.ReportID,
		OverallCompliance:    string(report.OverallCompliance),
		Requirements:         make([]RequirementResponse, 0, len(report.Requirements)),
		Risk: RiskResponse{
			Level:   string(report.Risk.Level),
			Score:   report.Risk.Score,
			Factors: report.Risk.Factors,
		},
		Recommendations:      report.Recommendations,
		CriticalWarnings:     report.CriticalWarnings,
		SeasonalRestrictions: report.SeasonalRestrictions,
		Warnings:             report.Warnings,
		Degraded:             report.Degraded,
		GeneratedAt:          report.GeneratedAt,
	}

	if report.WaterBody != nil {
		resp.WaterBody = &WaterBodyResponse{
			Type:              string(report.WaterBody.Type),
			BaseDistanceM:     report.WaterBody.BaseDistanceM,
			ReductionAllowed:  report.WaterBody.ReductionAllowed,
			SpecialProtection: report.WaterBody.SpecialProtection,
			DrinkingSource:    report.WaterBody.DrinkingSource,
			FishBearing:       report.WaterBody.FishBearing,
		}
	}

	for _, req := range report.Requirements {
		resp.Requirements = append(resp.Requirements, RequirementResponse{
			BufferType:          string(req.BufferType),
			RequiredDistanceM:   req.RequiredDistanceM,
			ActualDistanceM:     req.ActualDistanceM,
			ReducedDistanceM:    req.ReducedDistanceM,
			ReductionApplied:    req.ReductionApplied,
			ReductionConditions: req.ReductionConditions,
			FloorDistanceM:      req.FloorDistanceM,
			Compliance:          string(req.Compliance),
			SourceProductID:     req.SourceProductID,
		})
	}

	for _, p := range report.Profiles {
		resp.Profiles = append(resp.Profiles, ProfileResponse{
			ProductID:       p.ProductID,
			Name:            p.Name,
			CMR:             p.CMR,
			AquaticToxicity: string(p.AquaticToxicity),
			BeeToxicity:     string(p.BeeToxicity),
		})
	}
	return resp
}
