package models

import (
	"encoding/json"
	"time"
)

// Order lifecycle as reported by the API.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Submission lifecycle.
const (
	SubmissionPending   = "pending"
	SubmissionApproved  = "approved"
	SubmissionRejected  = "rejected"
	SubmissionCompleted = "completed"
)

func OrderStatuses() []string {
	return []string{OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled}
}

func SubmissionStatuses() []string {
	return []string{SubmissionPending, SubmissionApproved, SubmissionRejected, SubmissionCompleted}
}

type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type BusinessInfo struct {
	BusinessName string `json:"businessName"`
	DateOfBirth  string `json:"dateOfBirth"`
}

type PaymentInfo struct {
	PaymentID string `json:"paymentId"`
	Gateway   string `json:"gateway"`
	Status    string `json:"status"`
}

// UserRef is the order/submission user field. The API sends either a plain
// string identifier or an embedded {_id, name, email} object; both decode
// into the same struct so callers only ever see one shape.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*u = UserRef{ID: id}
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	u.ID = obj.MongoID
	if u.ID == "" {
		u.ID = obj.ID
	}
	u.Name = obj.Name
	u.Email = obj.Email
	return nil
}

// MarshalJSON emits the plain identifier; create/update requests reference
// users by id only.
func (u UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ID)
}

// Display picks the most useful label for table rows.
func (u UserRef) Display() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// OrderRef is an embedded order reference, sent as {_id} or a plain string.
type OrderRef struct {
	ID string
}

func (o *OrderRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		o.ID = id
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.ID = obj.MongoID
	if o.ID == "" {
		o.ID = obj.ID
	}
	return nil
}

func (o OrderRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ID)
}

type Order struct {
	ID           string       `json:"id"`
	User         UserRef      `json:"user"`
	Package      string       `json:"package"`
	BusinessInfo BusinessInfo `json:"businessInfo"`
	Status       string       `json:"status"`
	Payment      PaymentInfo  `json:"payment"`
	PDFPath      string       `json:"pdfPath,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		o.ID = aux.MongoID
	}
	return nil
}

type Submission struct {
	ID           string    `json:"id"`
	User         UserRef   `json:"user"`
	Order        OrderRef  `json:"order"`
	Status       string    `json:"status"`
	UserPDFPath  string    `json:"userPdfPath,omitempty"`
	AdminPDFPath string    `json:"adminPdfPath,omitempty"`
	AdminComment string    `json:"adminComment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Submission) UnmarshalJSON(data []byte) error {
	type alias Submission
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		s.ID = aux.MongoID
	}
	return nil
}
