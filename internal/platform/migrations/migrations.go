package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never auto-migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&customerRecord{},
		&categoryRecord{},
		&productRecord{},
		&invoiceRecord{},
		&invoiceItemRecord{},
		&leadRecord{},
		&interactionRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320"`
	PasswordHash string    `gorm:"column:password_hash"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Role         string    `gorm:"column:role;type:varchar(32);index"`
	Avatar       string    `gorm:"column:avatar"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;size:36;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:36"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex;size:320"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Company   string    `gorm:"column:company"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Category schema mirrors the products Postgres adapter.
type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Name        string    `gorm:"column:name"`
	SKU         string    `gorm:"column:sku;uniqueIndex"`
	Description string    `gorm:"column:description"`
	CategoryID  string    `gorm:"column:category_id;size:36;index"`
	Price       float64   `gorm:"column:price"`
	Stock       int       `gorm:"column:stock;index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Invoice schema mirrors the invoices Postgres adapter.
type invoiceRecord struct {
	ID         string     `gorm:"primaryKey;column:id;size:36"`
	Number     string     `gorm:"column:number;uniqueIndex"`
	CustomerID string     `gorm:"column:customer_id;size:36;index"`
	Subtotal   float64    `gorm:"column:subtotal"`
	Tax        float64    `gorm:"column:tax"`
	Total      float64    `gorm:"column:total"`
	Status     string     `gorm:"column:status;type:varchar(32);index:idx_invoices_status_created"`
	DueDate    *time.Time `gorm:"column:due_date"`
	CreatedAt  time.Time  `gorm:"column:created_at;index:idx_invoices_status_created"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (invoiceRecord) TableName() string { return "invoices" }

type invoiceItemRecord struct {
	ID        string  `gorm:"primaryKey;column:id;size:36"`
	InvoiceID string  `gorm:"column:invoice_id;size:36;index"`
	ProductID string  `gorm:"column:product_id;size:36;index"`
	Quantity  float64 `gorm:"column:quantity"`
	Price     float64 `gorm:"column:price"`
	Total     float64 `gorm:"column:total"`
}

func (invoiceItemRecord) TableName() string { return "invoice_items" }

// Lead schema mirrors the leads Postgres adapter.
type leadRecord struct {
	ID             string    `gorm:"primaryKey;column:id;size:36"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email"`
	Phone          string    `gorm:"column:phone"`
	Company        string    `gorm:"column:company"`
	Status         string    `gorm:"column:status;type:varchar(32);index"`
	Source         string    `gorm:"column:source"`
	Value          *float64  `gorm:"column:value"`
	Priority       string    `gorm:"column:priority;type:varchar(16);index"`
	CustomerID     *string   `gorm:"column:customer_id;size:36;index"`
	AssignedUserID *string   `gorm:"column:assigned_user_id;size:36;index"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (leadRecord) TableName() string { return "leads" }

type interactionRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	LeadID      string    `gorm:"column:lead_id;size:36;index"`
	Type        string    `gorm:"column:type;type:varchar(32)"`
	Subject     string    `gorm:"column:subject"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (interactionRecord) TableName() string { return "interactions" }
