package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrHandleTaken      = errors.New("channel username already exists")
	ErrChannelNotFound  = errors.New("channel not found")
	ErrTabNotFound      = errors.New("tab not found")
	ErrBlockNotFound    = errors.New("block not found")
	ErrInvalidTemplate  = errors.New("template must be 'owner' or 'overview'")
	ErrTemplateMismatch = errors.New("content does not match tab template")
)

// ChannelService handles channel, tab and tab-content CRUD.
type ChannelService struct {
	db *gorm.DB
}

func NewChannelService(db *gorm.DB) *ChannelService {
	return &ChannelService{db: db}
}

// ListChannels returns channels newest-first, with ANDed optional filters.
// A region or rating filter of "all" (or empty) is a no-op; search is a
// substring match over name, username and description.
func (s *ChannelService) ListChannels(region, ratingColor, search string) ([]models.Channel, error) {
	query := s.db.Model(&models.Channel{})

	if region != "" && region != models.RegionAll {
		query = query.Where("region = ?", region)
	}
	if ratingColor != "" && ratingColor != "all" {
		query = query.Where("rating_color = ?", ratingColor)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR username LIKE ? OR description LIKE ?", like, like, like)
	}

	var channels []models.Channel
	err := query.Order("created_at DESC").Find(&channels).Error
	return channels, err
}

// GetChannel composes a channel with its ordered tabs and each tab's
// content. Owner rows and blocks are batch-fetched per channel (one IN
// query each) rather than per tab. The reads are sequential, not a
// snapshot; a concurrent tab deletion can yield a stale tab list.
func (s *ChannelService) GetChannel(id uuid.UUID) (*dto.ChannelDetail, error) {
	var channel models.Channel
	if err := s.db.First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	var tabs []models.Tab
	if err := s.db.Where("channel_id = ?", id).
		Order("sort_order, created_at").
		Find(&tabs).Error; err != nil {
		return nil, err
	}

	ownerIDs := make([]uuid.UUID, 0, len(tabs))
	overviewIDs := make([]uuid.UUID, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Template == models.TemplateOwner {
			ownerIDs = append(ownerIDs, tab.ID)
		} else {
			overviewIDs = append(overviewIDs, tab.ID)
		}
	}

	contentByTab := make(map[uuid.UUID]*models.OwnerContent)
	if len(ownerIDs) > 0 {
		var contents []models.OwnerContent
		if err := s.db.Where("tab_id IN ?", ownerIDs).Find(&contents).Error; err != nil {
			return nil, err
		}
		for i := range contents {
			contentByTab[contents[i].TabID] = &contents[i]
		}
	}

	blocksByTab := make(map[uuid.UUID][]models.OverviewBlock)
	if len(overviewIDs) > 0 {
		var blocks []models.OverviewBlock
		if err := s.db.Where("tab_id IN ?", overviewIDs).
			Order("sort_order, created_at").
			Find(&blocks).Error; err != nil {
			return nil, err
		}
		for _, b := range blocks {
			blocksByTab[b.TabID] = append(blocksByTab[b.TabID], b)
		}
	}

	detail := &dto.ChannelDetail{Channel: channel, Tabs: make([]dto.TabView, 0, len(tabs))}
	for _, tab := range tabs {
		view := dto.TabView{Tab: tab}
		if tab.Template == models.TemplateOwner {
			view.Content = contentByTab[tab.ID]
		} else {
			view.Blocks = blocksByTab[tab.ID]
		}
		detail.Tabs = append(detail.Tabs, view)
	}

	return detail, nil
}

// CreateChannel creates a channel and, when the request carries an initial
// tab list, its tabs with sort order equal to the list index. A tab
// failure after the channel row is written leaves the channel without
// those tabs; there is no compensation.
func (s *ChannelService) CreateChannel(req *dto.CreateChannelRequest) (*models.Channel, error) {
	if req.Name == "" || req.Username == "" {
		return nil, errors.New("name and username are required")
	}

	var existing models.Channel
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrHandleTaken
	}

	channel := models.Channel{
		ID:          uuid.New(),
		Name:        req.Name,
		Username:    req.Username,
		Avatar:      req.Avatar,
		Description: req.Description,
		Category:    req.Category,
		Region:      req.Region,
		RatingColor: req.RatingColor,
	}
	if channel.Region == "" {
		channel.Region = models.RegionAll
	}

	if err := s.db.Create(&channel).Error; err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	for i, t := range req.Tabs {
		tab := models.Tab{
			ID:        uuid.New(),
			ChannelID: channel.ID,
			NameUk:    t.NameUk,
			NameEn:    t.NameEn,
			Template:  t.Template,
			SortOrder: i,
		}
		if err := s.db.Create(&tab).Error; err != nil {
			return nil, fmt.Errorf("failed to create tab: %w", err)
		}
	}

	return &channel, nil
}

func (s *ChannelService) UpdateChannel(id uuid.UUID, req *dto.UpdateChannelRequest) error {
	var channel models.Channel
	if err := s.db.First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return err
	}

	if req.Username != channel.Username {
		var existing models.Channel
		if err := s.db.Where("username = ? AND id <> ?", req.Username, id).First(&existing).Error; err == nil {
			return ErrHandleTaken
		}
	}

	return s.db.Model(&channel).Updates(map[string]interface{}{
		"name":         req.Name,
		"username":     req.Username,
		"avatar":       req.Avatar,
		"description":  req.Description,
		"category":     req.Category,
		"region":       req.Region,
		"rating_color": req.RatingColor,
	}).Error
}

// DeleteChannel removes a channel, its tabs and all tab content in one
// transaction.
func (s *ChannelService) DeleteChannel(id uuid.UUID) error {
	var channel models.Channel
	if err := s.db.First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var tabIDs []uuid.UUID
		if err := tx.Model(&models.Tab{}).Where("channel_id = ?", id).Pluck("id", &tabIDs).Error; err != nil {
			return err
		}
		if len(tabIDs) > 0 {
			if err := tx.Where("tab_id IN ?", tabIDs).Delete(&models.OverviewBlock{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tab_id IN ?", tabIDs).Delete(&models.OwnerContent{}).Error; err != nil {
				return err
			}
			if err := tx.Where("channel_id = ?", id).Delete(&models.Tab{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&channel).Error
	})
}

func (s *ChannelService) AddTab(channelID uuid.UUID, req *dto.NewTabRequest) (*models.Tab, error) {
	if req.Template != models.TemplateOwner && req.Template != models.TemplateOverview {
		return nil, ErrInvalidTemplate
	}
	if req.NameUk == "" || req.NameEn == "" {
		return nil, errors.New("nameUk and nameEn are required")
	}

	var channel models.Channel
	if err := s.db.First(&channel, "id = ?", channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	tab := models.Tab{
		ID:        uuid.New(),
		ChannelID: channelID,
		NameUk:    req.NameUk,
		NameEn:    req.NameEn,
		Template:  req.Template,
	}
	if err := s.db.Create(&tab).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

func (s *ChannelService) UpdateTab(id uuid.UUID, req *dto.UpdateTabRequest) error {
	result := s.db.Model(&models.Tab{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name_uk": req.NameUk,
		"name_en": req.NameEn,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTabNotFound
	}
	return nil
}

// DeleteTab removes a tab and cascades its content.
func (s *ChannelService) DeleteTab(id uuid.UUID) error {
	var tab models.Tab
	if err := s.db.First(&tab, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTabNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tab_id = ?", id).Delete(&models.OverviewBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tab_id = ?", id).Delete(&models.OwnerContent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tab).Error
	})
}

// UpsertOwnerContent writes the single owner-content row of an owner tab,
// creating it on first save and updating it thereafter.
func (s *ChannelService) UpsertOwnerContent(tabID uuid.UUID, req *dto.OwnerContentRequest) (*models.OwnerContent, error) {
	var tab models.Tab
	if err := s.db.First(&tab, "id = ?", tabID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTabNotFound
		}
		return nil, err
	}
	if tab.Template != models.TemplateOwner {
		return nil, ErrTemplateMismatch
	}

	var content models.OwnerContent
	err := s.db.Where("tab_id = ?", tabID).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = models.OwnerContent{ID: uuid.New(), TabID: tabID}
		applyOwnerContent(&content, req)
		if err := s.db.Create(&content).Error; err != nil {
			return nil, err
		}
		return &content, nil
	}
	if err != nil {
		return nil, err
	}

	applyOwnerContent(&content, req)
	if err := s.db.Save(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func applyOwnerContent(content *models.OwnerContent, req *dto.OwnerContentRequest) {
	content.Photo = req.Photo
	content.FullName = req.FullName
	content.BirthDate = req.BirthDate
	content.BirthPlace = req.BirthPlace
	content.Residence = req.Residence
	content.Phone = req.Phone
	content.MediaActivity = req.MediaActivity
	content.MediaResources = req.MediaResources
	content.SocialNetworks = req.SocialNetworks
	content.DossierPDF = req.DossierPDF
}

func (s *ChannelService) AddBlock(tabID uuid.UUID, req *dto.BlockRequest) (*models.OverviewBlock, error) {
	var tab models.Tab
	if err := s.db.First(&tab, "id = ?", tabID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTabNotFound
		}
		return nil, err
	}
	if tab.Template != models.TemplateOverview {
		return nil, ErrTemplateMismatch
	}

	images, err := marshalImages(req.Images)
	if err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.OverviewBlock{}).Where("tab_id = ?", tabID).Count(&count)

	block := models.OverviewBlock{
		ID:        uuid.New(),
		TabID:     tabID,
		TitleUk:   req.TitleUk,
		TitleEn:   req.TitleEn,
		ContentUk: req.ContentUk,
		ContentEn: req.ContentEn,
		Images:    images,
		SortOrder: int(count),
	}
	if err := s.db.Create(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (s *ChannelService) UpdateBlock(id uuid.UUID, req *dto.BlockRequest) error {
	images, err := marshalImages(req.Images)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.OverviewBlock{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title_uk":   req.TitleUk,
		"title_en":   req.TitleEn,
		"content_uk": req.ContentUk,
		"content_en": req.ContentEn,
		"images":     images,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

func (s *ChannelService) DeleteBlock(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.OverviewBlock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// Stats returns the public catalogue counters.
func (s *ChannelService) Stats() (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	if err := s.db.Model(&models.Channel{}).Count(&stats.Channels).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func marshalImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize images: %w", err)
	}
	return datatypes.JSON(b), nil
}
