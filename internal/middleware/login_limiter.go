package middleware

import (
	"sync"
	"time"
)

// ==================== LoginLimiter 登录限流器 ====================

// LoginLimiter 登录冷却限流器
// 同一邮箱连续多次失败后进入冷却期，挡住简单的暴力破解
type LoginLimiter struct {
	entries sync.Map // email -> *loginEntry
}

// loginEntry 冷却条目
type loginEntry struct {
	mu        sync.Mutex
	failCount int
	lastFail  time.Time
}

// NewLoginLimiter 创建限流器
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{}
}

const (
	maxLoginFailures = 5
	loginCooldown    = time.Minute
)

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许尝试
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 是否允许该邮箱继续尝试登录
func (l *LoginLimiter) Check(email string) CheckResult {
	actual, ok := l.entries.Load(email)
	if !ok {
		return CheckResult{Allowed: true}
	}
	entry := actual.(*loginEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.failCount < maxLoginFailures {
		return CheckResult{Allowed: true}
	}

	elapsed := time.Since(entry.lastFail)
	if elapsed < loginCooldown {
		return CheckResult{Allowed: false, RetryAfter: loginCooldown - elapsed}
	}

	// 冷却期已过，计数清零
	entry.failCount = 0
	return CheckResult{Allowed: true}
}

// MarkFailure 记录一次失败
func (l *LoginLimiter) MarkFailure(email string) {
	actual, _ := l.entries.LoadOrStore(email, &loginEntry{})
	entry := actual.(*loginEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.failCount++
	entry.lastFail = time.Now()
}

// MarkSuccess 登录成功后清除计数
func (l *LoginLimiter) MarkSuccess(email string) {
	l.entries.Delete(email)
}
