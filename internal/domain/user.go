package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Fullname       string             `bson:"fullname" json:"fullname"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password,omitempty" json:"-"`
	Contact        string             `bson:"contact" json:"contact"`
	Address        string             `bson:"address" json:"address"`
	City           string             `bson:"city" json:"city"`
	Country        string             `bson:"country" json:"country"`
	ProfilePicture string             `bson:"profile_picture" json:"profilePicture"`
	Admin          bool               `bson:"admin" json:"admin"`
	LastLogin      time.Time          `bson:"last_login" json:"lastLogin"`
	IsVerified     bool               `bson:"is_verified" json:"isVerified"`
	GoogleID       string             `bson:"google_id,omitempty" json:"-"`
	AuthProvider   AuthProvider       `bson:"auth_provider" json:"authProvider"`

	ResetPasswordToken          string    `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordTokenExpiresAt time.Time `bson:"reset_password_token_expires_at,omitempty" json:"-"`
	VerificationToken           string    `bson:"verification_token,omitempty" json:"-"`
	VerificationTokenExpiresAt  time.Time `bson:"verification_token_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
