package model

// TargetLocation is a stored coordinate used to gate where attendance
// may be marked.
type TargetLocation struct {
	Base
	LocationID    string  `db:"location_id" json:"locationId"`
	PHCName       string  `db:"phc_name" json:"phcName"`
	SubCenterName string  `db:"subcenter_name" json:"subCenterName"`
	District      string  `db:"district" json:"district"`
	Pincode       string  `db:"pincode" json:"pincode"`
	Latitude      float64 `db:"latitude" json:"latitude"`
	Longitude     float64 `db:"longitude" json:"longitude"`
}

type SetLocationRequest struct {
	LocationID    string  `json:"locationId" binding:"required"`
	PHCName       string  `json:"phcName" binding:"required"`
	SubCenterName string  `json:"subCenterName" binding:"required"`
	District      string  `json:"district" binding:"required"`
	Pincode       string  `json:"pincode" binding:"required,pincode6"`
	Latitude      float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude     float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// Coordinates is the trimmed-down target list served to clients and
// used by the attendance geofence.
type Coordinates struct {
	LocationID string  `db:"location_id" json:"locationId"`
	Latitude   float64 `db:"latitude" json:"latitude"`
	Longitude  float64 `db:"longitude" json:"longitude"`
}
