package router

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	docs "github.com/sitewise/backend/api"
	"github.com/sitewise/backend/internal/config"
	"github.com/sitewise/backend/internal/controllers/healthz"
	v1 "github.com/sitewise/backend/internal/controllers/v1"
	"github.com/sitewise/backend/internal/httputil"
	"github.com/sitewise/backend/internal/models"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router with all middlewares.
func Config(url *url.URL, cfg config.Config) (*gin.Engine, error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, _ io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if cfg.Metrics.Enabled {
		if err := registerPrometheusMetrics(); err != nil {
			return nil, err
		}

		r.Use(MetricsMiddleware())
	}

	// CORS settings
	if cfg.CORS.AllowOrigins != "" {
		log.Debug().Str("allowOrigins", cfg.CORS.AllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(cfg.CORS.AllowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Sitewise"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Sitewise, a construction site management solution."

	return r, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(cfg config.Config, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	if cfg.Metrics.Enabled {
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	healthz.RegisterRoutes(group.Group("/healthz"))

	// API v1 setup
	v1Group := group.Group("/v1")
	{
		v1Group.GET("", GetV1)
		v1Group.DELETE("", v1.Cleanup)
		v1Group.OPTIONS("", OptionsV1)
	}

	v1.RegisterProfileRoutes(v1Group.Group("/profiles"))
	v1.RegisterSiteRoutes(v1Group.Group("/sites"))
	v1.RegisterRoomRoutes(v1Group.Group("/rooms"))
	v1.RegisterTileRoutes(v1Group.Group("/tiles"))
	v1.RegisterZoneRoutes(v1Group.Group("/zones"))
	v1.RegisterRequirementRoutes(v1Group.Group("/requirements"))
	v1.RegisterExpenseRoutes(v1Group.Group("/expenses"))
	v1.RegisterPaymentRoutes(v1Group.Group("/payments"))
	v1.RegisterLineItemRoutes(v1Group.Group("/line-items"))
	v1.RegisterTileMatchRuleRoutes(v1Group.Group("/tile-match-rules"))
	v1.RegisterShortageRequestRoutes(v1Group.Group("/shortage-requests"))
	v1.RegisterNotificationRoutes(v1Group.Group("/notifications"))
	v1.RegisterReportRoutes(v1Group.Group("/reports"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    c.GetString(string(models.DBContextURL)) + "/docs/index.html",
			Healthz: c.GetString(string(models.DBContextURL)) + "/healthz",
			Version: c.GetString(string(models.DBContextURL)) + "/version",
			V1:      c.GetString(string(models.DBContextURL)) + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Profiles         string `json:"profiles" example:"https://example.com/api/v1/profiles"`                  // URL of profile list endpoint
	Sites            string `json:"sites" example:"https://example.com/api/v1/sites"`                        // URL of site list endpoint
	Rooms            string `json:"rooms" example:"https://example.com/api/v1/rooms"`                        // URL of room list endpoint
	Tiles            string `json:"tiles" example:"https://example.com/api/v1/tiles"`                        // URL of tile list endpoint
	Zones            string `json:"zones" example:"https://example.com/api/v1/zones"`                        // URL of zone list endpoint
	Requirements     string `json:"requirements" example:"https://example.com/api/v1/requirements"`          // URL of requirement list endpoint
	Expenses         string `json:"expenses" example:"https://example.com/api/v1/expenses"`                  // URL of expense list endpoint
	Payments         string `json:"payments" example:"https://example.com/api/v1/payments"`                  // URL of payment list endpoint
	LineItems        string `json:"lineItems" example:"https://example.com/api/v1/line-items"`               // URL of line item list endpoint
	TileMatchRules   string `json:"tileMatchRules" example:"https://example.com/api/v1/tile-match-rules"`    // URL of tile match rule list endpoint
	ShortageRequests string `json:"shortageRequests" example:"https://example.com/api/v1/shortage-requests"` // URL of shortage request list endpoint
	Notifications    string `json:"notifications" example:"https://example.com/api/v1/notifications"`        // URL of notification list endpoint
	Reports          string `json:"reports" example:"https://example.com/api/v1/reports"`                    // URL of report list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Profiles:         url + "/profiles",
			Sites:            url + "/sites",
			Rooms:            url + "/rooms",
			Tiles:            url + "/tiles",
			Zones:            url + "/zones",
			Requirements:     url + "/requirements",
			Expenses:         url + "/expenses",
			Payments:         url + "/payments",
			LineItems:        url + "/line-items",
			TileMatchRules:   url + "/tile-match-rules",
			ShortageRequests: url + "/shortage-requests",
			Notifications:    url + "/notifications",
			Reports:          url + "/reports",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
