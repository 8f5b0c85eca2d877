package amex

import (
	"encoding/json"
	"fmt"

	"cardfx-service/internal/domain/model"
)

type conversionResponse struct {
	ConvertedWithFee *float64 `json:"convertedWithFee"`
}

// Normalize derives the per-unit rate from a raw fee-adjusted conversion:
// the converted figure divided by the requested amount, or the figure itself
// when no amount was requested.
func Normalize(raw json.RawMessage, amount float64) (model.Rate, error) {
	var resp conversionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.Rate{}, fmt.Errorf("%w: failed to decode conversion response: %v", model.ErrParse, err)
	}
	if resp.ConvertedWithFee == nil {
		return model.Rate{}, fmt.Errorf("%w: conversion response carries no converted amount", model.ErrParse)
	}

	if amount > 0 {
		return model.SupportedRate(*resp.ConvertedWithFee / amount), nil
	}
	return model.SupportedRate(*resp.ConvertedWithFee), nil
}
