package http

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/mssola/useragent"

	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

// hostName nombre de la máquina que atiende el request. Vacío si no se puede determinar.
func hostName() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}

// clientContext extrae IP, navegador y máquina para la entrada LOGIN. Lo desconocido queda
// como entity.UnknownValue. Los valores se copian: c.Get apunta al buffer del request, que
// Fiber reutiliza, y la entrada vive más que el request.
func clientContext(c *fiber.Ctx, machine string) entity.ClientContext {
	return entity.ClientContext{
		IP:          utils.CopyString(clientIP(c)),
		MachineName: machine,
		Browser:     utils.CopyString(browserName(c.Get(fiber.HeaderUserAgent))),
	}.Normalized()
}

// clientIP primer salto de X-Forwarded-For, o la IP remota.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.IP()
}

func browserName(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + " " + version
}
