package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pharmadir/internal/model"
)

func TestCustomValidator_PharmacyInput(t *testing.T) {
	v := NewValidator()
	valid := model.CreatePharmacyInput{
		Name:       "Test Pharmacy",
		Address:    "1 Main St",
		Latitude:   "36.8065",
		Longitude:  "-10.1815",
		OpenHours:  "08:00",
		CloseHours: "23:59",
		Phone:      "+216 71 234 567",
		Status:     model.PharmacyStatusOpen,
	}
	assert.NoError(t, v.Validate(&valid))

	tests := []struct {
		name   string
		mutate func(*model.CreatePharmacyInput)
	}{
		{"hour out of range", func(in *model.CreatePharmacyInput) { in.OpenHours = "24:00" }},
		{"hour without padding", func(in *model.CreatePharmacyInput) { in.CloseHours = "8:00" }},
		{"latitude not numeric", func(in *model.CreatePharmacyInput) { in.Latitude = "north" }},
		{"latitude beyond the poles", func(in *model.CreatePharmacyInput) { in.Latitude = "135.5" }},
		{"negative latitude beyond the poles", func(in *model.CreatePharmacyInput) { in.Latitude = "-90.01" }},
		{"longitude out of range", func(in *model.CreatePharmacyInput) { in.Longitude = "181.5" }},
		{"phone with letters", func(in *model.CreatePharmacyInput) { in.Phone = "call me" }},
		{"unknown status", func(in *model.CreatePharmacyInput) { in.Status = "busy" }},
		{"missing name", func(in *model.CreatePharmacyInput) { in.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Error(t, v.Validate(&in))
		})
	}
}

func TestCustomValidator_PartialUpdate(t *testing.T) {
	v := NewValidator()
	bad := "25:00"
	good := "09:30"

	assert.NoError(t, v.Validate(&model.UpdatePharmacyInput{}))
	assert.NoError(t, v.Validate(&model.UpdatePharmacyInput{OpenHours: &good}))
	assert.Error(t, v.Validate(&model.UpdatePharmacyInput{OpenHours: &bad}))

	farNorth := "135.5"
	lng := "135.5"
	assert.Error(t, v.Validate(&model.UpdatePharmacyInput{Latitude: &farNorth}))
	assert.NoError(t, v.Validate(&model.UpdatePharmacyInput{Longitude: &lng}))
}

func TestCustomValidator_CoordinateBounds(t *testing.T) {
	v := NewValidator()
	in := model.CreatePharmacyInput{
		Name:       "Edge Pharmacy",
		Address:    "Pole Rd",
		Latitude:   "-90",
		Longitude:  "180",
		OpenHours:  "00:00",
		CloseHours: "23:59",
		Phone:      "+216 71 000 000",
		Status:     model.PharmacyStatusClose,
	}
	assert.NoError(t, v.Validate(&in))
}

func TestCustomValidator_CommentStarsAnyNumber(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&model.CreateCommentInput{PharmacyID: "ph-1", Comment: "Meh", Stars: -2}))
	assert.NoError(t, v.Validate(&model.CreateCommentInput{PharmacyID: "ph-1", Comment: "Wow", Stars: 12.5}))
	assert.Error(t, v.Validate(&model.CreateCommentInput{PharmacyID: "ph-1", Stars: 3}))
}
