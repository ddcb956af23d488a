package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/pkg/jwt"
)

// Locals keys para la sesión en Fiber.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalDisplayName = "display_name"
)

// CookieName cookie de sesión para clientes de navegador.
const CookieName = "fsis_token"

// GateDecision resultado de resolver el gate para una petición.
// La resolución es por petición: nunca se cachea entre navegaciones, así un
// sign-out externo se refleja en la siguiente petición.
type GateDecision int

// Decisiones posibles del gate.
const (
	GateUnauthenticated GateDecision = iota // sin sesión → login con retorno
	GateDenied                              // sesión sin rol permitido → home
	GateAllowed                             // sigue al handler
)

// ResolveGate decide el acceso a una vista protegida. Lista vacía significa
// "cualquier usuario autenticado"; la comparación de roles es por igualdad
// exacta y sin jerarquía (Admin pasa solo si está listado).
func ResolveGate(authenticated bool, role entity.Role, allowed []entity.Role) GateDecision {
	if !authenticated {
		return GateUnauthenticated
	}
	if len(allowed) == 0 {
		return GateAllowed
	}
	for _, a := range allowed {
		if role == a {
			return GateAllowed
		}
	}
	return GateDenied
}

// AuthMiddleware resuelve la sesión desde el Bearer token o la cookie de
// sesión y deja UserID, Role y DisplayName en c.Locals. Sin sesión válida:
// clientes JSON reciben 401, navegadores un redirect a /login con la ruta
// original en ?next= para volver después del login.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(CookieName)
		}
		if tokenString == "" {
			return unauthenticated(c)
		}
		userID, role, displayName, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthenticated(c)
		}
		// Un rol fuera del conjunto cerrado en el token no entra: se trata
		// como sesión inválida, no como rol comodín.
		parsedRole, err := entity.ParseRole(role)
		if err != nil {
			return unauthenticated(c)
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, parsedRole)
		c.Locals(LocalDisplayName, displayName)
		return c.Next()
	}
}

// RequireRole aplica la allow-list de la ruta sobre la sesión ya resuelta.
// Lista vacía deja pasar a cualquier autenticado. Denegado: clientes JSON
// reciben 403, navegadores un redirect a la home.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, authenticated := sessionRole(c)
		switch ResolveGate(authenticated, role, allowed) {
		case GateAllowed:
			return c.Next()
		case GateUnauthenticated:
			return unauthenticated(c)
		default:
			if wantsJSON(c) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a esta vista"})
			}
			return c.Redirect("/", fiber.StatusFound)
		}
	}
}

// GetUserID devuelve el UserID de la sesión (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol de la sesión (después del middleware de auth).
func GetRole(c *fiber.Ctx) entity.Role {
	role, _ := sessionRole(c)
	return role
}

// GetDisplayName devuelve el nombre visible de la sesión.
func GetDisplayName(c *fiber.Ctx) string {
	v := c.Locals(LocalDisplayName)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func sessionRole(c *fiber.Ctx) (entity.Role, bool) {
	v := c.Locals(LocalRole)
	if v == nil {
		return "", false
	}
	role, ok := v.(entity.Role)
	return role, ok
}

func unauthenticated(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "inicie sesión para continuar"})
	}
	next := c.OriginalURL()
	return c.Redirect("/login?next="+url.QueryEscape(next), fiber.StatusFound)
}

// wantsJSON distingue clientes de API de navegadores: Authorization presente
// o Accept que pide JSON.
func wantsJSON(c *fiber.Ctx) bool {
	if c.Get(fiber.HeaderAuthorization) != "" {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
