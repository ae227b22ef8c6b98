package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/erpflow/internal/domains/leads/domain"
	"github.com/Apurer/erpflow/internal/domains/leads/ports"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists leads and their interactions using GORM. Caller manages DB lifecycle and schema.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type leadRecord struct {
	ID             string    `gorm:"primaryKey;column:id;size:36"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email"`
	Phone          string    `gorm:"column:phone"`
	Company        string    `gorm:"column:company"`
	Status         string    `gorm:"column:status;type:varchar(32)"`
	Source         string    `gorm:"column:source"`
	Value          *float64  `gorm:"column:value"`
	Priority       string    `gorm:"column:priority;type:varchar(16)"`
	CustomerID     *string   `gorm:"column:customer_id;size:36"`
	AssignedUserID *string   `gorm:"column:assigned_user_id;size:36"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (leadRecord) TableName() string { return "leads" }

type interactionRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	LeadID      string    `gorm:"column:lead_id;size:36;index"`
	Type        string    `gorm:"column:type;type:varchar(32)"`
	Subject     string    `gorm:"column:subject"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (interactionRecord) TableName() string { return "interactions" }

// leadRow is a lead joined with its customer. The embedded field must be
// exported for gorm to scan its columns.
type leadRow struct {
	Lead            leadRecord `gorm:"embedded"`
	CustomerName    *string    `gorm:"column:customer_name"`
	CustomerEmail   *string    `gorm:"column:customer_email"`
	CustomerCompany *string    `gorm:"column:customer_company"`
}

type statusRow struct {
	Status string   `gorm:"column:status"`
	Count  int64    `gorm:"column:count"`
	Value  *float64 `gorm:"column:value"`
}

type interactionCountRow struct {
	LeadID string `gorm:"column:lead_id"`
	Count  int64  `gorm:"column:count"`
}

func (r *Repository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, errors.New("lead is nil")
	}
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(lead)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	saved := record.toDomain()
	saved.RecentInteractions = []domain.Interaction{}
	return saved, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row leadRow
	if err := r.db.WithContext(ctx).Scopes(withCustomer).Where("leads.id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	leads := []*domain.Lead{row.toDomain()}
	if err := r.attachInteractions(ctx, leads); err != nil {
		return nil, err
	}
	return leads[0], nil
}

// List returns one page of leads, newest first, with customer and the latest interactions.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Lead, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	db := r.db.WithContext(ctx)
	var total int64
	if err := db.Model(&leadRecord{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []leadRow
	if err := db.Scopes(withCustomer, filterScope(filter)).
		Order("leads.created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	leads := make([]*domain.Lead, 0, len(rows))
	for i := range rows {
		leads = append(leads, rows[i].toDomain())
	}
	if err := r.attachInteractions(ctx, leads); err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// StatusBreakdown groups all leads by status with count and value sum.
func (r *Repository) StatusBreakdown(ctx context.Context) ([]domain.StatusCount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []statusRow
	if err := r.db.WithContext(ctx).
		Model(&leadRecord{}).
		Select("status, COUNT(*) AS count, SUM(value) AS value").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.StatusCount{Status: domain.Status(row.Status), Count: row.Count, Value: row.Value})
	}
	return out, nil
}

func (r *Repository) AddInteraction(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := interactionRecord{
		ID:          interaction.ID,
		LeadID:      interaction.LeadID,
		Type:        string(interaction.Type),
		Subject:     interaction.Subject,
		Description: interaction.Description,
		Date:        interaction.Date,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Table("customers").Where("id = ?", customerID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) attachInteractions(ctx context.Context, leads []*domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	ids := make([]string, 0, len(leads))
	byID := make(map[string]*domain.Lead, len(leads))
	for _, lead := range leads {
		lead.RecentInteractions = []domain.Interaction{}
		ids = append(ids, lead.ID)
		byID[lead.ID] = lead
	}
	db := r.db.WithContext(ctx)

	var counts []interactionCountRow
	if err := db.Model(&interactionRecord{}).
		Select("lead_id, COUNT(*) AS count").
		Where("lead_id IN ?", ids).
		Group("lead_id").
		Scan(&counts).Error; err != nil {
		return err
	}
	for _, row := range counts {
		if lead, ok := byID[row.LeadID]; ok {
			lead.InteractionCount = row.Count
		}
	}

	var records []interactionRecord
	if err := db.Where("lead_id IN ?", ids).Order("date DESC").Find(&records).Error; err != nil {
		return err
	}
	for i := range records {
		lead, ok := byID[records[i].LeadID]
		if ok && len(lead.RecentInteractions) < ports.RecentInteractionLimit {
			lead.RecentInteractions = append(lead.RecentInteractions, *records[i].toDomain())
		}
	}
	return nil
}

func withCustomer(tx *gorm.DB) *gorm.DB {
	return tx.Table("leads").
		Select("leads.*, customers.name AS customer_name, customers.email AS customer_email, customers.company AS customer_company").
		Joins("LEFT JOIN customers ON customers.id = leads.customer_id")
}

func filterScope(filter ports.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			tx = tx.Where("leads.status = ?", string(filter.Status))
		}
		if filter.Priority != "" {
			tx = tx.Where("leads.priority = ?", string(filter.Priority))
		}
		if filter.UserID != "" {
			tx = tx.Where("leads.assigned_user_id = ?", filter.UserID)
		}
		if like, ok := projection.ContainsPattern(filter.Search); ok {
			tx = tx.Where(projection.ContainsAny("leads.name", "leads.email", "leads.company"), like, like, like)
		}
		return tx
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres lead repository not configured")
	}
	return nil
}

func toRecord(l *domain.Lead) leadRecord {
	return leadRecord{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		Status:         string(l.Status),
		Source:         l.Source,
		Value:          l.Value,
		Priority:       string(l.Priority),
		CustomerID:     l.CustomerID,
		AssignedUserID: l.AssignedUserID,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (r leadRecord) toDomain() *domain.Lead {
	return &domain.Lead{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Company:        r.Company,
		Status:         domain.Status(r.Status),
		Source:         r.Source,
		Value:          r.Value,
		Priority:       domain.Priority(r.Priority),
		CustomerID:     r.CustomerID,
		AssignedUserID: r.AssignedUserID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r leadRow) toDomain() *domain.Lead {
	lead := r.Lead.toDomain()
	if r.CustomerName != nil {
		lead.Customer = &domain.CustomerRef{
			Name:    deref(r.CustomerName),
			Email:   deref(r.CustomerEmail),
			Company: deref(r.CustomerCompany),
		}
	}
	return lead
}

func (r interactionRecord) toDomain() *domain.Interaction {
	return &domain.Interaction{
		ID:          r.ID,
		LeadID:      r.LeadID,
		Type:        domain.InteractionType(r.Type),
		Subject:     r.Subject,
		Description: r.Description,
		Date:        r.Date,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
