package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

var ErrInvalidIP = errors.New("Invalid IP address")

// ipv4Pattern deliberately does not range-check octets (999.999.999.999
// passes). The permissiveness is observable behavior the admin UI relies on;
// tightening it is a product decision, not a code fix.
var (
	ipv4Pattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)
	ipv6Chars   = regexp.MustCompile(`^[0-9a-fA-F:.]+$`)
)

// ValidIPSyntax reports whether the string looks like an IPv4 dotted quad or
// a colon-containing IPv6-ish address of at most 45 characters.
func ValidIPSyntax(ip string) bool {
	if ip == "" || len(ip) > 45 {
		return false
	}
	if ipv4Pattern.MatchString(ip) {
		return true
	}
	return strings.Contains(ip, ":") && ipv6Chars.MatchString(ip)
}

// BanStore is the persistence surface the gate needs.
type BanStore interface {
	Exists(ctx context.Context, ip string) (bool, error)
	Upsert(ctx context.Context, ban *domain.BannedIP) error
	Delete(ctx context.Context, ip string) error
	List(ctx context.Context) ([]domain.BannedIP, error)
}

type BanlistService struct {
	store  BanStore
	logger *zap.Logger
}

func NewBanlistService(store BanStore, logger *zap.Logger) *BanlistService {
	return &BanlistService{store: store, logger: logger}
}

// IsBanned exact-matches the trimmed IP against the ban table. Lookup
// failures fail open: an unreachable ban table must not block checkout.
func (s *BanlistService) IsBanned(ctx context.Context, ip string) bool {
	banned, err := s.store.Exists(ctx, strings.TrimSpace(ip))
	if err != nil {
		s.logger.Error("ban lookup failed", zap.String("ip", ip), zap.Error(err))
		return false
	}
	return banned
}

// Ban inserts the IP, updating the reason when it is already listed.
func (s *BanlistService) Ban(ctx context.Context, req domain.BanIPRequest) (*domain.BannedIP, error) {
	ip := strings.TrimSpace(req.IP)
	if !ValidIPSyntax(ip) {
		return nil, ErrInvalidIP
	}
	ban := &domain.BannedIP{IP: ip, Reason: req.Reason}
	if err := s.store.Upsert(ctx, ban); err != nil {
		return nil, err
	}
	return ban, nil
}

func (s *BanlistService) Unban(ctx context.Context, ip string) error {
	return s.store.Delete(ctx, strings.TrimSpace(ip))
}

func (s *BanlistService) List(ctx context.Context) ([]domain.BannedIP, error) {
	return s.store.List(ctx)
}
