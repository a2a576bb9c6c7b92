package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account row. UID is the opaque identifier used on the wire
// (JWT claims, chat recipients, presence entries); the numeric primary key
// never leaves the database layer.
type User struct {
	BaseModel
	UID                string     `json:"_id" gorm:"size:64;uniqueIndex"`
	Email              string     `json:"email" gorm:"size:128;uniqueIndex"`
	Password           string     `json:"-" gorm:"size:128"`
	FirstName          string     `json:"firstName,omitempty" gorm:"size:128"`
	LastName           string     `json:"lastName,omitempty" gorm:"size:128"`
	AvatarLink         string     `json:"avatarLink,omitempty" gorm:"size:256"`
	Enabled            bool       `json:"-" gorm:"default:true"`
	EmailVerified      bool       `json:"emailVerified" gorm:"default:false"`
	EmailVerifyToken   string     `json:"-" gorm:"size:128;index"`
	EmailVerifyExpires *time.Time `json:"-"`
	LastLogin          *time.Time `json:"lastLogin,omitempty"`
	AuthToken          string     `json:"token,omitempty" gorm:"-"`
}

// DisplayName joins the name fields the way the chat UI shows them.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

func GetUserByUID(db *gorm.DB, uid string) (*User, error) {
	var val User
	result := db.Where("uid", uid).Where("enabled", true).Take(&val)
	if result.Error != nil {
		return nil, result.Error
	}
	return &val, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var val User
	result := db.Where("email", email).Take(&val)
	if result.Error != nil {
		return nil, result.Error
	}
	return &val, nil
}
