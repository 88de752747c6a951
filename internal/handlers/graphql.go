package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQL serves the schema over GET and POST. A browser GET without the
// raw parameter gets the GraphiQL page instead.
func GraphQL(schema *graphql.Schema, logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodGet && wantsGraphiQL(ctx.Request) {
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", graphiQLPage)
			return
		}

		req, err := getRequest(ctx.Request)
		if err != nil {
			logger.Debug("bad graphql request", zap.Error(err))
			writeRequestError(ctx, http.StatusBadRequest, err.Error())
			return
		}

		if strings.TrimSpace(req.Query) == "" {
			writeRequestError(ctx, http.StatusBadRequest, "Must provide query string.")
			return
		}

		resp := schema.Exec(ctx.Request.Context(), req.Query, req.OperationName, req.Variables)

		// No data at all means the document never executed: it failed to
		// parse or validate.
		status := http.StatusOK
		if len(resp.Data) == 0 && len(resp.Errors) > 0 {
			status = http.StatusBadRequest
		}

		ctx.JSON(status, resp)
	}
}

func writeRequestError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{
		"errors": []gin.H{{"message": message}},
	})
}

func getRequest(r *http.Request) (*GraphQLRequest, error) {
	gqlReq := &GraphQLRequest{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		gqlReq.Query = query.Get("query")
		gqlReq.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &gqlReq.Variables); err != nil {
				return nil, errors.Wrap(err, "Variables are invalid JSON")
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse media type")
		}

		switch mediaType {
		case "application/json":
			if err := json.NewDecoder(r.Body).Decode(gqlReq); err != nil {
				return nil, errors.Wrap(err, "Not a valid GraphQL request body")
			}
		case "application/graphql":
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return nil, errors.Wrap(err, "Unable to read request body")
			}
			gqlReq.Query = string(body)
		default:
			return nil, errors.New(
				"Unrecognised Content-Type. Please use application/json for GraphQL requests")
		}
	default:
		return nil, errors.New(
			"Unrecognised request method. Please use GET or POST for GraphQL requests")
	}

	return gqlReq, nil
}

func wantsGraphiQL(r *http.Request) bool {
	if _, raw := r.URL.Query()["raw"]; raw {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
