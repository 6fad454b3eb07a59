package model

// StaffRole is the job title of a sub-center staff member.
type StaffRole string

const (
	RoleANM1  StaffRole = "ANM1"
	RoleANM2  StaffRole = "ANM2"
	RoleANM3  StaffRole = "ANM3"
	RoleANM4  StaffRole = "ANM4"
	RoleStaff StaffRole = "Staff"
	RoleAdmin StaffRole = "Admin"
)

// Staff is a registered community health worker. Phone number, Aadhar
// ID and Gmail are each globally unique.
type Staff struct {
	Base
	FullName      string    `db:"full_name" json:"fullName"`
	Age           int       `db:"age" json:"age,omitempty"`
	Gender        string    `db:"gender" json:"gender,omitempty"`
	PhoneNumber   string    `db:"phone_number" json:"phoneNumber"`
	AadharID      string    `db:"aadhar_id" json:"aadharID"`
	Role          StaffRole `db:"role" json:"role"`
	PHCName       string    `db:"phc_name" json:"phcName"`
	PHCID         string    `db:"phc_id" json:"phcID"`
	SubcenterName string    `db:"subcenter_name" json:"subcenterName"`
	SubcenterID   string    `db:"subcenter_id" json:"subcenterID"`
	Gmail         string    `db:"gmail" json:"gmail"`
	PasswordHash  string    `db:"password_hash" json:"-"`
}

type SignupRequest struct {
	FullName        string    `json:"fullName" binding:"required"`
	Age             int       `json:"age" binding:"omitempty,gt=0"`
	Gender          string    `json:"gender"`
	PhoneNumber     string    `json:"phoneNumber" binding:"required,phone10"`
	AadharID        string    `json:"aadharID" binding:"required,aadhar12"`
	Role            StaffRole `json:"role" binding:"required,oneof=ANM1 ANM2 ANM3 ANM4 Staff Admin"`
	PHCName         string    `json:"phcName"`
	PHCID           string    `json:"phcID"`
	SubcenterName   string    `json:"subcenterName"`
	SubcenterID     string    `json:"subcenterID"`
	Gmail           string    `json:"gmail" binding:"required,gmailaddr"`
	Password        string    `json:"password" binding:"required,min=8"`
	ConfirmPassword string    `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// UpdateProfileRequest is the self-service profile edit. Not subject
// to any time window.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone10"`
	Gmail       string `json:"gmail" binding:"required,gmailaddr"`
}

// UpdateStaffRequest is the admin-side staff edit.
type UpdateStaffRequest struct {
	FullName      *string    `json:"fullName"`
	Age           *int       `json:"age" binding:"omitempty,gt=0"`
	Gender        *string    `json:"gender"`
	Role          *StaffRole `json:"role" binding:"omitempty,oneof=ANM1 ANM2 ANM3 ANM4 Staff Admin"`
	PHCName       *string    `json:"phcName"`
	PHCID         *string    `json:"phcID"`
	SubcenterName *string    `json:"subcenterName"`
	SubcenterID   *string    `json:"subcenterID"`
	Gmail         *string    `json:"gmail" binding:"omitempty,gmailaddr"`
}
