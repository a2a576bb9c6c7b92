package models

// Message is one routed chat message. MsgID is the identifier delivered on
// the wire as "_id"; sender and recipient hold user UIDs.
type Message struct {
	BaseModel
	MsgID     string `json:"_id" gorm:"size:64;uniqueIndex"`
	Sender    string `json:"sender" gorm:"size:64;index"`
	Recipient string `json:"recipient" gorm:"size:64;index"`
	Text      string `json:"text" gorm:"type:text"`
}
