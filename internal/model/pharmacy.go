package model

import "time"

// PharmacyStatus is the open/close state of a pharmacy.
type PharmacyStatus string

const (
	PharmacyStatusOpen  PharmacyStatus = "open"
	PharmacyStatusClose PharmacyStatus = "close"
)

// Toggle returns the opposite status. Anything that is not "close" is treated
// as open, so a toggle always lands on one of the two valid values.
func (s PharmacyStatus) Toggle() PharmacyStatus {
	if s == PharmacyStatusClose {
		return PharmacyStatusOpen
	}
	return PharmacyStatusClose
}

// Pharmacy is a directory entry. The same record is stored as a Firestore
// document in the "pharmacies" collection or as a row of the pharmacies table.
type Pharmacy struct {
	ID         string         `json:"id" firestore:"-" gorm:"type:varchar(64);primaryKey"`
	Name       string         `json:"name" firestore:"name" gorm:"size:255;not null;index"`
	Image      string         `json:"image,omitempty" firestore:"image,omitempty" gorm:"size:1024"`
	Address    string         `json:"address" firestore:"address" gorm:"size:512;not null"`
	Latitude   string         `json:"latitude" firestore:"latitude" gorm:"size:32;not null"`
	Longitude  string         `json:"longLatitude" firestore:"longLatitude" gorm:"column:long_latitude;size:32;not null"`
	OpenHours  string         `json:"openHours" firestore:"openHours" gorm:"size:5;not null"`
	CloseHours string         `json:"closeHours" firestore:"closeHours" gorm:"size:5;not null"`
	Phone      string         `json:"phone" firestore:"phone" gorm:"size:32;not null"`
	Status     PharmacyStatus `json:"status" firestore:"status" gorm:"type:varchar(8);not null;default:'close';index"`
	CreatedAt  time.Time      `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  *time.Time     `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// CreatePharmacyInput is the payload accepted when creating a pharmacy.
type CreatePharmacyInput struct {
	Name       string         `json:"name" form:"name" validate:"required"`
	Image      string         `json:"image,omitempty" form:"image" validate:"omitempty,url"`
	Address    string         `json:"address" form:"address" validate:"required"`
	Latitude   string         `json:"latitude" form:"latitude" validate:"required,lat_coordinate"`
	Longitude  string         `json:"longLatitude" form:"longLatitude" validate:"required,coordinate"`
	OpenHours  string         `json:"openHours" form:"openHours" validate:"required,hhmm"`
	CloseHours string         `json:"closeHours" form:"closeHours" validate:"required,hhmm"`
	Phone      string         `json:"phone" form:"phone" validate:"required,phone"`
	Status     PharmacyStatus `json:"status" form:"status" validate:"required,oneof=open close"`
}

// ToPharmacy builds the record to persist. ID and timestamps are assigned by the store.
func (in CreatePharmacyInput) ToPharmacy() *Pharmacy {
	return &Pharmacy{
		Name:       in.Name,
		Image:      in.Image,
		Address:    in.Address,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		OpenHours:  in.OpenHours,
		CloseHours: in.CloseHours,
		Phone:      in.Phone,
		Status:     in.Status,
	}
}

// UpdatePharmacyInput is a partial update; nil fields are left untouched.
type UpdatePharmacyInput struct {
	Name       *string         `json:"name,omitempty" validate:"omitempty,min=1"`
	Image      *string         `json:"image,omitempty" validate:"omitempty,url"`
	Address    *string         `json:"address,omitempty" validate:"omitempty,min=1"`
	Latitude   *string         `json:"latitude,omitempty" validate:"omitempty,lat_coordinate"`
	Longitude  *string         `json:"longLatitude,omitempty" validate:"omitempty,coordinate"`
	OpenHours  *string         `json:"openHours,omitempty" validate:"omitempty,hhmm"`
	CloseHours *string         `json:"closeHours,omitempty" validate:"omitempty,hhmm"`
	Phone      *string         `json:"phone,omitempty" validate:"omitempty,phone"`
	Status     *PharmacyStatus `json:"status,omitempty" validate:"omitempty,oneof=open close"`
}

// PharmacyChanges lists the fields set on a partial update, keyed by field.
type PharmacyChanges map[PharmacyField]interface{}

// PharmacyField names an updatable pharmacy attribute.
type PharmacyField string

const (
	FieldName       PharmacyField = "name"
	FieldImage      PharmacyField = "image"
	FieldAddress    PharmacyField = "address"
	FieldLatitude   PharmacyField = "latitude"
	FieldLongitude  PharmacyField = "longLatitude"
	FieldOpenHours  PharmacyField = "openHours"
	FieldCloseHours PharmacyField = "closeHours"
	FieldPhone      PharmacyField = "phone"
	FieldStatus     PharmacyField = "status"
)

// Changes returns the non-nil fields of the update.
func (in UpdatePharmacyInput) Changes() PharmacyChanges {
	changes := PharmacyChanges{}
	set := func(field PharmacyField, v *string) {
		if v != nil {
			changes[field] = *v
		}
	}
	set(FieldName, in.Name)
	set(FieldImage, in.Image)
	set(FieldAddress, in.Address)
	set(FieldLatitude, in.Latitude)
	set(FieldLongitude, in.Longitude)
	set(FieldOpenHours, in.OpenHours)
	set(FieldCloseHours, in.CloseHours)
	set(FieldPhone, in.Phone)
	if in.Status != nil {
		changes[FieldStatus] = string(*in.Status)
	}
	return changes
}

// Apply copies the changes onto p. Unknown fields are ignored.
func (c PharmacyChanges) Apply(p *Pharmacy) {
	for field, value := range c {
		s, _ := value.(string)
		switch field {
		case FieldName:
			p.Name = s
		case FieldImage:
			p.Image = s
		case FieldAddress:
			p.Address = s
		case FieldLatitude:
			p.Latitude = s
		case FieldLongitude:
			p.Longitude = s
		case FieldOpenHours:
			p.OpenHours = s
		case FieldCloseHours:
			p.CloseHours = s
		case FieldPhone:
			p.Phone = s
		case FieldStatus:
			p.Status = PharmacyStatus(s)
		}
	}
}

// CreatePharmacyResponse is returned by a successful create.
type CreatePharmacyResponse struct {
	Message    string `json:"message"`
	PharmacyID string `json:"pharmacyId"`
}
