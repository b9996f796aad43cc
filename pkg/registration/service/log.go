package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/auth"
	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
)

const serviceName = "IdentityRegistrationService"

// logService wraps Service with logging of every call
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for Service. It logs method, duration
// and error of each call.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Submit(ctx context.Context, req identity.Request) (sub *Submission, err error) {
	start := time.Now()
	subject, _ := auth.SubjectFromContext(ctx)

	ls.logger.Info("Submit started",
		zap.String("service", serviceName),
		zap.String("method", "Submit"),
		zap.String("subject", subject),
		zap.String("name", req.Name),
		zap.Stringer("network", req.Network),
		zap.Int("primary_addresses", len(req.PrimaryAddresses)),
	)

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("Submit failed",
				zap.String("service", serviceName),
				zap.String("method", "Submit"),
				zap.String("subject", subject),
				zap.String("name", req.Name),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Submit completed",
			zap.String("service", serviceName),
			zap.String("method", "Submit"),
			zap.String("subject", subject),
			zap.String("id", sub.ID),
			zap.String("name", sub.Name),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Submit(ctx, req)
}

func (ls *logService) Status(ctx context.Context, id string) (p *registration.Progress, err error) {
	start := time.Now()

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Warn("Status failed",
				zap.String("service", serviceName),
				zap.String("method", "Status"),
				zap.String("id", id),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Debug("Status completed",
			zap.String("service", serviceName),
			zap.String("method", "Status"),
			zap.String("id", id),
			zap.Stringer("state", p.State),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Status(ctx, id)
}
