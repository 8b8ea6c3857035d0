package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"collabhub/internal/models"
	"collabhub/internal/repository"
	"collabhub/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminStats mirrors the admin analytics panel. The counts are recomputed
// by a full scan on every call; nothing is maintained incrementally.
type AdminStats struct {
	TotalUsers           int `json:"total_users"`
	TotalResearchers     int `json:"total_researchers"`
	TotalIndustry        int `json:"total_industry"`
	TotalPosts           int `json:"total_posts"`
	TotalFeatureRequests int `json:"total_feature_requests"`
	TotalResearchTopics  int `json:"total_research_topics"`
	ActiveCollaborations int `json:"active_collaborations"`
	VerifiedUsers        int `json:"verified_users"`
}

type AdminService interface {
	Stats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context) ([]models.Profile, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	ExportUsers(ctx context.Context) (string, error)
}

type adminService struct {
	profiles  repository.ProfileRepository
	posts     repository.PostRepository
	collabs   repository.CollaborationRepository
	exportDir string
}

func NewAdminService(
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	collabs repository.CollaborationRepository,
	exportDir string,
) AdminService {
	if exportDir == "" {
		exportDir = "./data/exports"
	}
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		log.Printf("Failed to create export directory: %v", err)
	}

	return &adminService{
		profiles:  profiles,
		posts:     posts,
		collabs:   collabs,
		exportDir: exportDir,
	}
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.collabs.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{
		TotalUsers:           len(profiles),
		TotalPosts:           len(posts),
		ActiveCollaborations: len(active),
	}
	for _, p := range profiles {
		if p.Role != nil {
			switch *p.Role {
			case models.RoleResearcher:
				stats.TotalResearchers++
			case models.RoleIndustry:
				stats.TotalIndustry++
			}
		}
		if p.IsVerified {
			stats.VerifiedUsers++
		}
	}
	for _, p := range posts {
		switch p.PostType {
		case models.PostTypeFeatureRequest:
			stats.TotalFeatureRequests++
		case models.PostTypeResearchTopic:
			stats.TotalResearchTopics++
		}
	}

	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *adminService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	err := s.profiles.SetVerified(ctx, id, verified)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ExportUsers writes the user table to an xlsx file and returns its path.
func (s *adminService) ExportUsers(ctx context.Context) (string, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return "", err
	}

	timestamp := time.Now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("users_%s.xlsx", timestamp)
	path := filepath.Join(s.exportDir, filename)

	if err := utils.CreateUsersReport(path, profiles); err != nil {
		return "", fmt.Errorf("failed to create users report: %w", err)
	}

	log.Printf("Users report exported: %s (%d profiles)", filename, len(profiles))
	return path, nil
}
