package models

// Contact is a message submitted through the public contact form.
type Contact struct {
	BaseModel
	Name    string `json:"name" gorm:"size:128"`
	Email   string `json:"email" gorm:"size:128;index"`
	Subject string `json:"subject" gorm:"size:256"`
	Body    string `json:"body" gorm:"type:text"`
}

// Migrations lists every entity AutoMigrate runs over.
func Migrations() []any {
	return []any{&User{}, &Message{}, &Contact{}}
}
