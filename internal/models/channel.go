package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Region values a channel can be scoped to.
const (
	RegionAll     = "all"
	RegionKharkiv = "kharkiv"
)

// Tab templates.
const (
	TemplateOwner    = "owner"
	TemplateOverview = "overview"
)

// Channel is one catalogued Telegram channel.
type Channel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Username    string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Avatar      string    `gorm:"type:text" json:"avatar"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:100" json:"category"`
	Region      string    `gorm:"size:20;default:'all'" json:"region"`
	RatingColor string    `gorm:"size:20" json:"ratingColor"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tabs []Tab `gorm:"constraint:OnDelete:CASCADE" json:"tabs,omitempty"`
}

// Tab is a named sub-section of a channel's detail page. Its template
// decides which content table backs it: owner tabs hold a single
// OwnerContent row, overview tabs hold ordered OverviewBlocks.
type Tab struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChannelID uuid.UUID `gorm:"type:uuid;not null;index" json:"channel_id"`
	NameUk    string    `gorm:"size:255;not null" json:"nameUk"`
	NameEn    string    `gorm:"size:255;not null" json:"nameEn"`
	Template  string    `gorm:"size:20;not null" json:"template"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerContent is the single biographical record of an owner tab.
// At most one row per tab; writes go through an upsert keyed by tab_id.
type OwnerContent struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TabID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"tab_id"`
	Photo          string    `gorm:"type:text" json:"photo"`
	FullName       string    `gorm:"size:255" json:"fullName"`
	BirthDate      string    `gorm:"size:100" json:"birthDate"`
	BirthPlace     string    `gorm:"size:255" json:"birthPlace"`
	Residence      string    `gorm:"size:255" json:"residence"`
	Phone          string    `gorm:"size:100" json:"phone"`
	MediaActivity  string    `gorm:"type:text" json:"mediaActivity"`
	MediaResources string    `gorm:"type:text" json:"mediaResources"`
	SocialNetworks string    `gorm:"type:text" json:"socialNetworks"`
	DossierPDF     string    `gorm:"type:text" json:"dossierPdf"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OverviewBlock is one bilingual content unit of an overview tab.
type OverviewBlock struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TabID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"tab_id"`
	TitleUk   string         `gorm:"size:255" json:"titleUk"`
	TitleEn   string         `gorm:"size:255" json:"titleEn"`
	ContentUk string         `gorm:"type:text" json:"contentUk"`
	ContentEn string         `gorm:"type:text" json:"contentEn"`
	Images    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"images"`
	SortOrder int            `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
