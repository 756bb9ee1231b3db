package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paygrid/plan-engine/internal/domain"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (
			id, name, email, phone, phone_extension, address1, address2,
			city, state, zip, country, routing_number, account_number, bank_name,
			photo_id, digital_signature, proof_of_payment, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	photoID, err := marshalDocument(customer.PhotoID)
	if err != nil {
		return err
	}
	signature, err := marshalDocument(customer.Signature)
	if err != nil {
		return err
	}
	proof, err := marshalDocument(customer.ProofOfPayment)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.PhoneExtension,
		customer.Address1,
		customer.Address2,
		customer.City,
		customer.State,
		customer.Zip,
		customer.Country,
		customer.RoutingNumber,
		customer.AccountNumber,
		customer.BankName,
		photoID,
		signature,
		proof,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

func (r *customerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone, phone_extension, address1, address2,
		       city, state, zip, country, routing_number, account_number, bank_name,
		       photo_id, digital_signature, proof_of_payment, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var row customerRow
	if err := r.db.GetContext(ctx, &row, query, customerID); err != nil {
		return nil, err
	}

	return row.toCustomer()
}

// customerRow carries the jsonb document columns through sqlx scanning.
type customerRow struct {
	domain.Customer
	PhotoIDRaw   sql.NullString `db:"photo_id"`
	SignatureRaw sql.NullString `db:"digital_signature"`
	ProofRaw     sql.NullString `db:"proof_of_payment"`
}

func (row *customerRow) toCustomer() (*domain.Customer, error) {
	customer := row.Customer

	var err error
	if customer.PhotoID, err = unmarshalDocument(row.PhotoIDRaw); err != nil {
		return nil, err
	}
	if customer.Signature, err = unmarshalDocument(row.SignatureRaw); err != nil {
		return nil, err
	}
	if customer.ProofOfPayment, err = unmarshalDocument(row.ProofRaw); err != nil {
		return nil, err
	}

	return &customer, nil
}

func marshalDocument(doc *domain.DocumentRef) (interface{}, error) {
	if doc == nil {
		return nil, nil
	}
	return json.Marshal(doc)
}

func unmarshalDocument(raw sql.NullString) (*domain.DocumentRef, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	var doc domain.DocumentRef
	if err := json.Unmarshal([]byte(raw.String), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
