package service

import (
	"context"
	"strings"
	"time"

	"github.com/sms-next/internal/cache"
	"github.com/sms-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

// 验证码字符集，去掉易混淆的 0/O/1/I/l/o
const captchaCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务。
// Redis 可用时验证码存 Redis（多实例共享），否则退化为进程内存储。
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	var store base64Captcha.Store
	if cache.Enabled() {
		store = newRedisCaptchaStore(time.Duration(cfg.ExpireSeconds) * time.Second)
	} else {
		store = base64Captcha.NewMemoryStore(cfg.MaxStore, time.Duration(cfg.ExpireSeconds)*time.Second)
	}
	return &CaptchaService{cfg: cfg, store: store}
}

// Enabled 验证码是否启用
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		0,
		s.cfg.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码。大小写不敏感，验证后即删除。
func (s *CaptchaService) Verify(captchaID, captchaCode string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	stored := s.store.Get(captchaID, true)
	if stored == "" || !strings.EqualFold(stored, captchaCode) {
		return ErrCaptchaInvalid
	}
	return nil
}

// redisCaptchaStore 基于 Redis 的验证码存储，实现 base64Captcha.Store
type redisCaptchaStore struct {
	ttl time.Duration
}

func newRedisCaptchaStore(ttl time.Duration) *redisCaptchaStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCaptchaStore{ttl: ttl}
}

func (s *redisCaptchaStore) key(id string) string {
	return "captcha:" + id
}

// Set 写入验证码答案
func (s *redisCaptchaStore) Set(id string, value string) error {
	return cache.SetString(context.Background(), s.key(id), value, s.ttl)
}

// Get 读取验证码答案，clear 为真时读后删除
func (s *redisCaptchaStore) Get(id string, clear bool) string {
	value, hit, err := cache.GetString(context.Background(), s.key(id))
	if err != nil || !hit {
		return ""
	}
	if clear {
		_ = cache.Del(context.Background(), s.key(id))
	}
	return value
}

// Verify 校验验证码答案
func (s *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := s.Get(id, clear)
	return stored != "" && strings.EqualFold(stored, answer)
}
