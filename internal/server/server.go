package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shoulu/internal/domain"
	"shoulu/internal/engine"
	"shoulu/internal/registry"
)

// Config for the HTTP API handler.
type Config struct {
	Engine   engine.Engine
	BasePath string
	Auth     AuthConfig
	Logger   *zap.Logger
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"not_found"`
	Message string         `json:"message" example:"personnel record not found"`
	Details map[string]any `json:"details,omitempty"`
}

// apiError is the error envelope of every failed request.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

// New returns an HTTP handler exposing the ordination API.
func New(cfg Config) (http.Handler, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v0"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if cfg.Engine.Config == nil {
		return nil, errors.New("engine config not loaded")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Auth.Logger == nil {
		cfg.Auth.Logger = logger
	}
	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, errorDetails(errs))
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		return newAPIError(status, "", msg, errorDetails(errs))
	}

	router := chi.NewRouter()
	router.Use(newAuthMiddleware(path.Join(basePath, "personnel"), cfg.Auth))
	hcfg := huma.DefaultConfig("Shoulu Ordination API", "0.2.0")
	hcfg.OpenAPIPath = ""
	hcfg.DocsPath = ""
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerDocs(router, basePath)
	registerHealth(group)
	registerSexagenary(group)
	registerOrdinations(group, cfg.Engine)
	registerPersonnel(group, cfg.Engine, logger)
	registerOpenAPI(router, api, basePath, cfg.Auth.enabled())

	return router, nil
}

func errorDetails(errs []error) map[string]any {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return map[string]any{"errors": msgs}
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}
	return &apiError{
		status: status,
		Body: apiErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return newAPIError(http.StatusBadRequest, "bad_request", err.Error(), nil)
	case errors.Is(err, registry.ErrNotFound):
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		return newAPIError(http.StatusInternalServerError, "internal_error", "internal error", map[string]any{"error": err.Error()})
	}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

func registerDocs(r chi.Router, basePath string) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, swaggerHTML(basePath))
	})
}

func registerOpenAPI(r chi.Router, api huma.API, basePath string, secured bool) {
	var (
		once sync.Once
		spec []byte
	)
	r.Get(path.Join(basePath, "openapi.json"), func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			oas := api.OpenAPI()
			if secured {
				applyAuthSecurity(oas, path.Join(basePath, "personnel"))
			}
			spec, _ = json.Marshal(oas)
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
}

// applyAuthSecurity marks the mutating personnel operations as bearer-protected.
func applyAuthSecurity(oas *huma.OpenAPI, personnelPath string) {
	if oas == nil {
		return
	}
	if oas.Components == nil {
		oas.Components = &huma.Components{}
	}
	if oas.Components.SecuritySchemes == nil {
		oas.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	oas.Components.SecuritySchemes["bearerAuth"] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
	security := []map[string][]string{{"bearerAuth": {}}}
	for route, item := range oas.Paths {
		if !strings.HasPrefix(route, personnelPath) {
			continue
		}
		for _, op := range []*huma.Operation{item.Post, item.Put, item.Patch, item.Delete} {
			if op != nil {
				op.Security = security
			}
		}
	}
}

func swaggerHTML(basePath string) string {
	specURL := path.Join("/", path.Join(basePath, "openapi.json"))
	return fmt.Sprintf(`<!doctype html>
<html lang="zh-Hant">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Shoulu API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
    <script>
      window.onload = () => {
        SwaggerUIBundle({
          url: '%s',
          dom_id: '#swagger-ui'
        });
      };
    </script>
  </body>
</html>`, specURL)
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerSexagenary(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-sexagenary",
		Method:      http.MethodGet,
		Path:        "/sexagenary/{year}",
		Summary:     "Stem-branch pair of a republic-calendar year",
	}, func(ctx context.Context, input *struct {
		Year int `path:"year"`
	}) (*struct {
		Body SexagenaryResponse `json:"body"`
	}, error) {
		sx := engine.ResolveSexagenary(input.Year)
		return &struct {
			Body SexagenaryResponse `json:"body"`
		}{Body: SexagenaryResponse{Year: input.Year, Stem: string(sx.Stem), Branch: string(sx.Branch), Name: sx.String()}}, nil
	})
}

func registerOrdinations(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID: "derive-ordination",
		Method:      http.MethodPost,
		Path:        "/ordinations",
		Summary:     "Derive an ordination result",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body domain.Input `json:"body"`
	}) (*struct {
		Body domain.Result `json:"body"`
	}, error) {
		res, err := e.Derive(input.Body)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Result `json:"body"`
		}{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "report-ordination",
		Method:      http.MethodPost,
		Path:        "/ordinations/report",
		Summary:     "Assemble the reporting text for an input",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body ReportRequest `json:"body"`
	}) (*struct {
		Body ReportResponse `json:"body"`
	}, error) {
		in := input.Body.Input.Normalize()
		res, err := e.Derive(in)
		if err != nil {
			return nil, handleError(err)
		}
		opts, err := e.ReportOptions(input.Body.Name, input.Body.Mode, in.Vocation)
		if err != nil {
			return nil, handleError(err)
		}
		if input.Body.CleanDuty != nil {
			opts.CleanDuty = *input.Body.CleanDuty
		}
		if input.Body.ShortMarshals != nil {
			opts.ShortMarshals = *input.Body.ShortMarshals
		}
		return &struct {
			Body ReportResponse `json:"body"`
		}{Body: ReportResponse{Mode: string(opts.Mode), Text: engine.Report(res, opts)}}, nil
	})
}

func registerPersonnel(api huma.API, e engine.Engine, logger *zap.Logger) {
	type idPath struct {
		ID string `path:"id"`
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-personnel",
		Method:      http.MethodGet,
		Path:        "/personnel",
		Summary:     "List saved disciples",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body PersonnelListResponse `json:"body"`
	}, error) {
		recs, err := e.ListRecords(ctx)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body PersonnelListResponse `json:"body"`
		}{Body: PersonnelListResponse{Items: recs, Count: len(recs)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-personnel",
		Method:      http.MethodGet,
		Path:        "/personnel/{id}",
		Summary:     "Get a saved disciple",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *idPath) (*struct {
		Body domain.Record `json:"body"`
	}, error) {
		rec, err := e.GetRecord(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Record `json:"body"`
		}{Body: rec}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "save-personnel",
		Method:        http.MethodPost,
		Path:          "/personnel",
		Summary:       "Derive and save a disciple",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Body SavePersonnelRequest `json:"body"`
	}) (*struct {
		Body domain.Record `json:"body"`
	}, error) {
		rec, err := e.SaveRecord(ctx, input.Body.Name, input.Body.Input, actorFromContext(ctx))
		if err != nil {
			return nil, handleError(err)
		}
		return &struct {
			Body domain.Record `json:"body"`
		}{Body: rec}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-personnel",
		Method:        http.MethodDelete,
		Path:          "/personnel/{id}",
		Summary:       "Remove a saved disciple; unknown ids are ignored",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusUnauthorized},
	}, func(ctx context.Context, input *idPath) (*struct{}, error) {
		removed, err := e.RemoveRecord(ctx, input.ID, actorFromContext(ctx))
		if err != nil {
			return nil, handleError(err)
		}
		if !removed {
			logger.Debug("delete of unknown personnel id", zap.String("id", input.ID))
		}
		return &struct{}{}, nil
	})
}
