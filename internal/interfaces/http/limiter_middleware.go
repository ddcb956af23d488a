package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/fardsis/fsis-api/internal/application/dto"
)

// LoginLimiter limita intentos de login por IP para frenar fuerza bruta.
// 2 req/s con ráfaga de 5, la franja estricta usual para rutas de auth.
type LoginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter construye el limitador y arranca la limpieza de entradas viejas.
func NewLoginLimiter() *LoginLimiter {
	l := &LoginLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(2),
		burst:    5,
	}
	go l.cleanup()
	return l
}

// Handler middleware Fiber: 429 cuando la IP agota su cuota.
func (l *LoginLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere un momento"})
		}
		return c.Next()
	}
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()
	return v.limiter.Allow()
}

// cleanup elimina IPs sin actividad para no crecer sin límite.
func (l *LoginLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}
