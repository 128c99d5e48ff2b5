package dto

import (
	"encoding/json"

	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
)

type NewTabRequest struct {
	NameUk   string `json:"nameUk"`
	NameEn   string `json:"nameEn"`
	Template string `json:"template"`
}

type CreateChannelRequest struct {
	Name        string          `json:"name"`
	Username    string          `json:"username"`
	Avatar      string          `json:"avatar"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Region      string          `json:"region"`
	RatingColor string          `json:"ratingColor"`
	Tabs        []NewTabRequest `json:"tabs"`
}

type UpdateChannelRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Region      string `json:"region"`
	RatingColor string `json:"ratingColor"`
}

type UpdateTabRequest struct {
	NameUk string `json:"nameUk"`
	NameEn string `json:"nameEn"`
}

type OwnerContentRequest struct {
	Photo          string `json:"photo"`
	FullName       string `json:"fullName"`
	BirthDate      string `json:"birthDate"`
	BirthPlace     string `json:"birthPlace"`
	Residence      string `json:"residence"`
	Phone          string `json:"phone"`
	MediaActivity  string `json:"mediaActivity"`
	MediaResources string `json:"mediaResources"`
	SocialNetworks string `json:"socialNetworks"`
	DossierPDF     string `json:"dossierPdf"`
}

type BlockRequest struct {
	TitleUk   string   `json:"titleUk"`
	TitleEn   string   `json:"titleEn"`
	ContentUk string   `json:"contentUk"`
	ContentEn string   `json:"contentEn"`
	Images    []string `json:"images"`
}

// TabView is the tagged union a tab presents at the API boundary: owner
// tabs carry a single content record (possibly null), overview tabs carry
// an ordered block list. Only the variant matching the template is
// serialized.
type TabView struct {
	models.Tab
	Content *models.OwnerContent
	Blocks  []models.OverviewBlock
}

func (t TabView) MarshalJSON() ([]byte, error) {
	if t.Template == models.TemplateOwner {
		return json.Marshal(struct {
			models.Tab
			Content *models.OwnerContent `json:"content"`
		}{t.Tab, t.Content})
	}
	blocks := t.Blocks
	if blocks == nil {
		blocks = []models.OverviewBlock{}
	}
	return json.Marshal(struct {
		models.Tab
		Blocks []models.OverviewBlock `json:"blocks"`
	}{t.Tab, blocks})
}

// ChannelDetail is a channel composed with its tabs and their content.
type ChannelDetail struct {
	models.Channel
	Tabs []TabView `json:"tabs"`
}

type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
