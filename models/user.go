// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleSuperAdmin is the only role provisioned today.
const RoleSuperAdmin = "SUPER_ADMIN"

// User is an admin account. OTP and OTPExpiry are either both set or both absent.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	OTP       string             `json:"-" bson:"otp,omitempty"`
	OTPExpiry *time.Time         `json:"-" bson:"otpExpiry,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// HasPendingOTP reports whether a login is waiting for its second factor.
func (u *User) HasPendingOTP() bool {
	return u.OTP != "" && u.OTPExpiry != nil
}

// AdminLoginRequest is the first login step.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest is the second login step.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,min=4"`
}

// TokenResponse carries the signed session token.
type TokenResponse struct {
	Token string `json:"token"`
}
