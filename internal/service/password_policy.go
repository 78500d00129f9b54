package service

import (
	"fmt"
	"unicode"

	"github.com/sms-next/internal/config"
	"github.com/sms-next/internal/constants"
)

type passwordPolicyError struct {
	message string
}

func (e passwordPolicyError) Error() string {
	return e.message
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{message: fmt.Sprintf("密码长度至少%d位", policy.MinLength)}
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{message: "密码必须包含大写字母"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{message: "密码必须包含小写字母"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{message: "密码必须包含数字"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{message: "密码必须包含特殊字符"}
	}

	return nil
}

// PasswordStrength 密码强度评估结果
type PasswordStrength struct {
	Level string `json:"level"` // WEAK / MEDIUM / STRONG
	Label string `json:"label"` // 弱 / 中 / 强
	Score int    `json:"score"`
}

// EvaluatePasswordStrength 评估密码强度。
// 评分项：长度≥8、长度≥12、小写、大写、数字、特殊字符，
// 得分≥5 为强，≥3 为中，否则为弱。
func EvaluatePasswordStrength(password string) PasswordStrength {
	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	if len([]rune(password)) >= 12 {
		score++
	}
	if hasLower {
		score++
	}
	if hasUpper {
		score++
	}
	if hasNumber {
		score++
	}
	if hasSpecial {
		score++
	}

	switch {
	case score >= 5:
		return PasswordStrength{Level: constants.PasswordStrengthStrong, Label: "强", Score: score}
	case score >= 3:
		return PasswordStrength{Level: constants.PasswordStrengthMedium, Label: "中", Score: score}
	default:
		return PasswordStrength{Level: constants.PasswordStrengthWeak, Label: "弱", Score: score}
	}
}
