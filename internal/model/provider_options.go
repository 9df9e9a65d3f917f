// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Provider option keys as sent on the wire.
const (
	OptionOrderTypeID           = "OrderTypeId"
	OptionDeliveryID            = "DeliveryId"
	OptionAdditionalInformation = "AdditionalInformation"
)

// Choice is an id/label pair offered to staff when configuring an order.
type Choice struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Order types
const (
	OrderTypeTranslation           = 6
	OrderTypeSpecialistTranslation = 8
	OrderTypeTranscreation         = 9
)

// Delivery times
const (
	DeliveryExpress = 1
	Delivery24H     = 2
	Delivery48H     = 3
	Delivery3D      = 4
	Delivery1W      = 5
)

// OrderTypeChoices lists the order types understood by the HTTP providers.
func OrderTypeChoices() []Choice {
	return []Choice{
		{ID: OrderTypeTranslation, Label: "Translation"},
		{ID: OrderTypeSpecialistTranslation, Label: "Specialist translation"},
		{ID: OrderTypeTranscreation, Label: "Transcreation"},
	}
}

// DeliveryTimeChoices lists the delivery times understood by the HTTP providers.
func DeliveryTimeChoices() []Choice {
	return []Choice{
		{ID: DeliveryExpress, Label: "Express (6h)"},
		{ID: Delivery24H, Label: "24 hours"},
		{ID: Delivery48H, Label: "48 hours"},
		{ID: Delivery3D, Label: "3 days"},
		{ID: Delivery1W, Label: "1 week"},
	}
}

// ProviderOptionsInput carries the staff-selected order options. Nil fields are omitted.
type ProviderOptionsInput struct {
	OrderType      *int    `json:"order_type,omitempty"`
	DeliveryTime   *int    `json:"delivery_time,omitempty"`
	AdditionalInfo *string `json:"additional_info,omitempty"`
}

// ToWire maps the input onto provider option keys.
func (in ProviderOptionsInput) ToWire() map[string]any {
	out := make(map[string]any)
	if in.OrderType != nil {
		out[OptionOrderTypeID] = *in.OrderType
	}
	if in.DeliveryTime != nil {
		out[OptionDeliveryID] = *in.DeliveryTime
	}
	if in.AdditionalInfo != nil {
		out[OptionAdditionalInformation] = *in.AdditionalInfo
	}
	return out
}
