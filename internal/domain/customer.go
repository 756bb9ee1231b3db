package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer owns the identity, contact and bank details a plan draws against.
// A plan references its customer; the customer is not embedded in the plan row.
type Customer struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Name           string       `json:"name" db:"name"`
	Email          string       `json:"email" db:"email"`
	Phone          string       `json:"phone" db:"phone"`
	PhoneExtension string       `json:"phoneExtension,omitempty" db:"phone_extension"`
	Address1       string       `json:"address1" db:"address1"`
	Address2       string       `json:"address2,omitempty" db:"address2"`
	City           string       `json:"city" db:"city"`
	State          string       `json:"state" db:"state"`
	Zip            string       `json:"zip" db:"zip"`
	Country        string       `json:"country" db:"country"`
	RoutingNumber  string       `json:"routingNumber" db:"routing_number"`
	AccountNumber  string       `json:"accountNumber" db:"account_number"`
	BankName       string       `json:"bankName" db:"bank_name"`
	PhotoID        *DocumentRef `json:"photoId,omitempty" db:"-"`
	Signature      *DocumentRef `json:"digitalSignature,omitempty" db:"-"`
	ProofOfPayment *DocumentRef `json:"proofOfPayment,omitempty" db:"-"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// DocumentRef points at an uploaded verification document. Storage and upload
// live elsewhere; the engine only tracks the reference.
type DocumentRef struct {
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"uploadDate"`
	Verified   bool      `json:"verified"`
}

// DocumentsMeta carries document references on the create-plan request.
type DocumentsMeta struct {
	PhotoID        *DocumentRef `json:"photoId,omitempty"`
	Signature      *DocumentRef `json:"digitalSignature,omitempty"`
	ProofOfPayment *DocumentRef `json:"proofOfPayment,omitempty"`
}
