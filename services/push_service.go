package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/sirupsen/logrus"
)

// Notifier sends a mobile push to every enabled device of a user.
type Notifier interface {
	PushToUser(ctx context.Context, userID, title, body string, data map[string]string)
}

type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, in *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, in *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type PushService struct {
	devices     repositories.DeviceRepository
	sns         snsAPI
	platformArn string
	log         *logrus.Logger
}

func NewPushService(ctx context.Context, region, platformArn string, devices repositories.DeviceRepository, log *logrus.Logger) (*PushService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		devices:     devices,
		sns:         awssns.NewFromConfig(cfg),
		platformArn: platformArn,
		log:         log,
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform"` // "android" | "ios"
	Token    string `json:"token"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) RegisterDevice(ctx context.Context, userID, platform, token string) (models.UserDevice, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return models.UserDevice{}, invalid("Platform must be android or ios")
	}
	if token == "" {
		return models.UserDevice{}, invalid("Device token is required")
	}
	if p.platformArn == "" {
		return models.UserDevice{}, errors.New("push platform application is not configured")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.platformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return models.UserDevice{}, fmt.Errorf("create endpoint: %w", err)
	}

	dev := models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}
	if err := p.devices.Upsert(ctx, dev); err != nil {
		return models.UserDevice{}, err
	}
	return dev, nil
}

func (p *PushService) PushToUser(ctx context.Context, userID, title, body string, data map[string]string) {
	devices, err := p.devices.ListByUser(ctx, userID)
	if err != nil {
		p.log.WithError(err).WithField("user_id", userID).Warn("list push devices")
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
			"data": data,
		},
	}
	raw, _ := json.Marshal(msg)

	for _, d := range devices {
		if !d.Enabled {
			continue
		}
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.WithError(err).WithField("user_id", userID).Warn("push publish failed")
		}
	}
}

// SetNotifications turns push delivery on or off for every device of the user.
func (p *PushService) SetNotifications(ctx context.Context, userID string, enabled bool) (int, error) {
	devices, err := p.devices.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, d := range devices {
		d.Enabled = enabled
		d.UpdatedAt = time.Now()
		if err := p.devices.Upsert(ctx, d); err != nil {
			return 0, err
		}
	}
	return len(devices), nil
}

var _ Notifier = (*PushService)(nil)
