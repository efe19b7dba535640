// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/dossier/internal/platform/apperr"
	"github.com/taibuivan/dossier/internal/platform/constants"
	"github.com/taibuivan/dossier/internal/platform/ctxutil"
	"github.com/taibuivan/dossier/internal/platform/middleware"
	requestutil "github.com/taibuivan/dossier/internal/platform/request"
	"github.com/taibuivan/dossier/internal/platform/respond"
	"github.com/taibuivan/dossier/internal/platform/sec"
	"github.com/taibuivan/dossier/internal/preference"
	"github.com/taibuivan/dossier/internal/selector"
	"github.com/taibuivan/dossier/internal/snapshot"
	"github.com/taibuivan/dossier/internal/state"
	"github.com/taibuivan/dossier/pkg/convert"
	"github.com/taibuivan/dossier/pkg/pagination"
	"github.com/taibuivan/dossier/pkg/query"
)

// Query paths of the paginated collections.
const (
	pathEntities      = "entities"
	pathCollections   = "collections"
	pathNotifications = "notifications"

	// documentPrefix scopes the document screen's search parameters in the location.
	documentPrefix = "document"
)

// # Handler Implementation

// Handler implements the HTTP layer over the selectors.
type Handler struct {
	snapshots   *snapshot.Service
	preferences *preference.Service
}

// NewHandler constructs a new view [Handler].
func NewHandler(snapshots *snapshot.Service, preferences *preference.Service) *Handler {
	return &Handler{snapshots: snapshots, preferences: preferences}
}

// Routes returns a [chi.Router] configured with the read endpoints and the
// administrative ingest endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Application
	router.Get("/metadata", handler.getMetadata)
	router.Get("/session", handler.getSession)
	router.Get("/statistics", handler.getStatistics)
	router.Get("/alerts", handler.getAlerts)
	router.Get("/querylogs", handler.getQueryLogs)
	router.Get("/frame", handler.getFrame)
	router.Get("/locale", handler.getLocale)
	router.Put("/locale", handler.putLocale)

	// ## Entities & Documents
	router.Get("/entities", handler.listEntities)
	router.Route("/entities/{id}", func(entity chi.Router) {
		entity.Get("/", handler.getEntity)
		entity.Get("/tags", handler.getEntityTags)
		entity.Get("/references", handler.getEntityReferences)
	})
	router.Route("/documents/{id}", func(document chi.Router) {
		document.Get("/", handler.getDocumentScreen)
		document.Post("/search", handler.searchDocument)
		document.Get("/content", handler.getDocumentContent)
	})

	// ## Collections
	router.Get("/collections", handler.listCollections)
	router.Route("/collections/{id}", func(collection chi.Router) {
		collection.Get("/", handler.getCollection)
		collection.Get("/permissions", handler.getCollectionPermissions)
		collection.Get("/xref", handler.getCollectionXrefIndex)
		collection.Get("/xref/matches", handler.listCollectionXrefMatches)
	})

	router.Get("/notifications", handler.listNotifications)

	// ## Ingest (Admin)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/state/results/*", handler.putResult(state.TableResults))
		admin.Put("/state/collectionXrefMatches/*", handler.putResult(state.TableCollectionXrefMatches))
		admin.Put("/state/{table}", handler.putRecord)
		admin.Put("/state/{table}/{id}", handler.putRecord)
	})

	return router
}

// # Snapshot Resolution

// snapshotFor returns the snapshot the request resolves against: the published
// store, the caller's session and their locale choice.
func (handler *Handler) snapshotFor(request *http.Request) *state.Store {
	ctx := request.Context()

	locale := handler.preferences.Locale(ctx, ctxutil.PreferenceOwner(ctx))

	return handler.snapshots.Current().
		WithSession(sessionFrom(ctxutil.GetAuthUser(ctx))).
		WithConfig(state.Config{Locale: locale}).
		Localized(locale)
}

// sessionFrom rebuilds the session record from verified token claims.
func sessionFrom(claims *sec.AuthClaims) *state.Session {
	if claims == nil {
		return &state.Session{}
	}
	return &state.Session{
		LoggedIn: true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
}

// parseQuery reads the query of a paginated endpoint from the request URL.
func parseQuery(request *http.Request, path, prefix string) (query.Query, error) {
	q, err := query.FromLocation(path, request.URL.RawQuery, nil, prefix)
	if err != nil {
		return query.Query{}, apperr.ValidationError("Malformed query string")
	}
	return q, nil
}

func flag(values url.Values, name string) bool {
	return convert.ToBool(values.Get(name), values.Has(name))
}

// pageMeta prefers the bounds the backend stored with a result over the requested ones.
func pageMeta(q query.Query, total, limit, offset, pages int) pagination.Meta {
	params := q.Pagination()
	if limit > 0 {
		params = pagination.FromOffset(offset, limit)
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	if pages > 0 {
		meta.TotalPages = pages
	}
	return meta
}

// # Application Endpoints

/*
GET /api/v1/metadata.

Description: Application metadata for the active locale. Metadata produced
for another locale reads as not loaded.

Response:
  - 200: state.Metadata
*/
func (handler *Handler) getMetadata(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.Metadata(handler.snapshotFor(request)))
}

// GET /api/v1/session.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.Session(handler.snapshotFor(request)))
}

// GET /api/v1/statistics.
func (handler *Handler) getStatistics(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.Statistics(handler.snapshotFor(request)))
}

// GET /api/v1/alerts.
func (handler *Handler) getAlerts(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.Alerts(handler.snapshotFor(request)))
}

/*
GET /api/v1/querylogs.

Request:
  - limit: int (number of recent queries, default 9)

Response:
  - 200: state.QueryLogs
*/
func (handler *Handler) getQueryLogs(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), selector.DefaultQueryLogLimit)
	respond.OK(writer, selector.QueryLogsLimited(handler.snapshotFor(request), limit))
}

/*
GET /api/v1/frame.

Request:
  - title: string (screen title)
  - description: string (screen description, omitted when empty)
  - require_session: bool (screen needs a logged-in user)

Response:
  - 200: Frame
*/
func (handler *Handler) getFrame(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	respond.OK(writer, ScreenFrame(handler.snapshotFor(request), values.Get("title"), values.Get("description"), flag(values, "require_session")))
}

// localeResponse describes the active locale and where it came from.
type localeResponse struct {
	Locale     string   `json:"locale"`
	Override   bool     `json:"override"`
	Negotiated string   `json:"negotiated"`
	Supported  []string `json:"supported"`
}

func (handler *Handler) describeLocale(request *http.Request) localeResponse {
	store := handler.snapshotFor(request)
	negotiated := handler.preferences.Negotiate(request.Header.Get(constants.HeaderAcceptLang))

	response := localeResponse{
		Locale:     selector.Locale(store),
		Override:   store.Config.Locale != "",
		Negotiated: negotiated,
		Supported:  handler.preferences.Supported(),
	}
	if response.Locale == "" {
		response.Locale = negotiated
	}
	return response
}

/*
GET /api/v1/locale.

Description: The active locale is the caller's stored choice, else the
locale of the loaded metadata, else the best match for Accept-Language.

Response:
  - 200: localeResponse
*/
func (handler *Handler) getLocale(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.describeLocale(request))
}

/*
PUT /api/v1/locale.

Request Body:
  - locale: string (supported tag; "" forgets the choice)

Response:
  - 200: localeResponse
  - 400: ErrInvalidJSON, VALIDATION_ERROR
  - 401: No session and no X-Client-ID
*/
func (handler *Handler) putLocale(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctx := request.Context()
	owner := ctxutil.PreferenceOwner(ctx)

	var err error
	if body.Locale == "" {
		err = handler.preferences.ClearLocale(ctx, owner)
	} else {
		_, err = handler.preferences.SetLocale(ctx, owner, body.Locale)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.describeLocale(request))
}

// # Entity Endpoints

/*
GET /api/v1/entities.

Request:
  - q, filter:<field>, sort, facet, limit, offset

Response:
  - 200: selector.Page[*state.Entity] with pagination meta
*/
func (handler *Handler) listEntities(writer http.ResponseWriter, request *http.Request) {
	q, err := parseQuery(request, pathEntities, "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := selector.EntitiesResult(handler.snapshotFor(request), q)
	respond.Paginated(writer, page, pageMeta(q, page.Total, page.Limit, page.Offset, page.Pages))
}

// entityResponse is an entity with its resolved display mode.
type entityResponse struct {
	Entity    *state.Entity    `json:"entity"`
	View      string           `json:"view"`
	Reference *state.Reference `json:"reference,omitempty"`
}

/*
GET /api/v1/entities/{id}.

Request:
  - mode: string (explicit display mode)
  - preview: bool (rendered inside the preview pane)
  - qname: string (reference property to select)

Response:
  - 200: entityResponse
*/
func (handler *Handler) getEntity(writer http.ResponseWriter, request *http.Request) {
	store := handler.snapshotFor(request)
	entityID := requestutil.Param(request, "id")
	values := request.URL.Query()

	respond.OK(writer, entityResponse{
		Entity:    selector.Entity(store, entityID),
		View:      selector.EntityView(store, entityID, values.Get("mode"), flag(values, "preview")),
		Reference: selector.EntityReference(store, entityID, values.Get("qname")),
	})
}

// GET /api/v1/entities/{id}/tags.
func (handler *Handler) getEntityTags(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.EntityTags(handler.snapshotFor(request), requestutil.Param(request, "id")))
}

// GET /api/v1/entities/{id}/references.
func (handler *Handler) getEntityReferences(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.EntityReferences(handler.snapshotFor(request), requestutil.Param(request, "id")))
}

/*
GET /api/v1/documents/{id}.

Request:
  - document:q, document:filter:<field>: the in-document search
  - mode: string (mode chosen in the location hash)

Response:
  - 200: Document
*/
func (handler *Handler) getDocumentScreen(writer http.ResponseWriter, request *http.Request) {
	q, err := parseQuery(request, pathEntities, documentPrefix)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	documentID := requestutil.Param(request, "id")
	hashMode := request.URL.Query().Get("mode")

	respond.OK(writer, DocumentScreen(handler.snapshotFor(request), documentID, q, hashMode))
}

/*
POST /api/v1/documents/{id}/search.

Request Body:
  - location: Location (the current location)
  - text: string

Response:
  - 200: Location (where to navigate)
  - 400: ErrInvalidJSON, malformed location
*/
func (handler *Handler) searchDocument(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Location Location `json:"location"`
		Text     string   `json:"text"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	q, err := query.FromLocation(pathEntities, body.Location.Search, nil, documentPrefix)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Malformed location search"))
		return
	}

	next, err := SearchLocation(q, body.Location, body.Text)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Malformed location hash"))
		return
	}

	respond.OK(writer, next)
}

// GET /api/v1/documents/{id}/content.
func (handler *Handler) getDocumentContent(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.DocumentContent(handler.snapshotFor(request), requestutil.Param(request, "id")))
}

// # Collection Endpoints

// GET /api/v1/collections.
func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	q, err := parseQuery(request, pathCollections, "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := selector.CollectionsResult(handler.snapshotFor(request), q)
	respond.Paginated(writer, page, pageMeta(q, page.Total, page.Limit, page.Offset, page.Pages))
}

// collectionResponse is a collection with its resolved display mode.
type collectionResponse struct {
	Collection *state.Collection `json:"collection"`
	View       string            `json:"view"`
}

/*
GET /api/v1/collections/{id}.

Request:
  - mode: string (explicit display mode)
  - preview: bool

Response:
  - 200: collectionResponse
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	store := handler.snapshotFor(request)
	collectionID := requestutil.Param(request, "id")
	values := request.URL.Query()

	respond.OK(writer, collectionResponse{
		Collection: selector.Collection(store, collectionID),
		View:       selector.CollectionView(store, collectionID, values.Get("mode"), flag(values, "preview")),
	})
}

// GET /api/v1/collections/{id}/permissions.
func (handler *Handler) getCollectionPermissions(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.CollectionPermissions(handler.snapshotFor(request), requestutil.Param(request, "id")))
}

// GET /api/v1/collections/{id}/xref.
func (handler *Handler) getCollectionXrefIndex(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, selector.CollectionXrefIndex(handler.snapshotFor(request), requestutil.Param(request, "id")))
}

/*
GET /api/v1/collections/{id}/xref/matches.

Description: Cross-reference matches are keyed by the query on the path
"collections/{id}/xref", so each collection pages through its own matches.

Response:
  - 200: state.XrefMatches with pagination meta
*/
func (handler *Handler) listCollectionXrefMatches(writer http.ResponseWriter, request *http.Request) {
	q, err := parseQuery(request, XrefPath(requestutil.Param(request, "id")), "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	matches := selector.CollectionXrefMatches(handler.snapshotFor(request), q)
	respond.Paginated(writer, matches, pageMeta(q, matches.Total, matches.Limit, matches.Offset, 0))
}

// XrefPath is the query path of a collection's cross-reference matches.
func XrefPath(collectionID string) string {
	return pathCollections + "/" + collectionID + "/xref"
}

// GET /api/v1/notifications.
func (handler *Handler) listNotifications(writer http.ResponseWriter, request *http.Request) {
	q, err := parseQuery(request, pathNotifications, "")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := selector.NotificationsResult(handler.snapshotFor(request), q)
	respond.Paginated(writer, page, pageMeta(q, page.Total, page.Limit, page.Offset, page.Pages))
}

// # Ingest Endpoints

/*
PUT /api/v1/state/{table} and /api/v1/state/{table}/{id}.

Description: Replaces one record wholesale. Singleton tables are addressed
without an id. Metadata addressed by a locale, as in /state/metadata/de, is
served to callers whose active locale is that locale.

Request Body:
  - The JSON record

Response:
  - 204: Replaced
  - 400: Unknown table, bad id, invalid JSON
  - 422: Payload does not fit the table's record type
*/
func (handler *Handler) putRecord(writer http.ResponseWriter, request *http.Request) {
	payload, err := requestutil.RawJSON(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	table := state.Table(requestutil.Param(request, "table"))
	id := requestutil.Param(request, "id")

	if err := handler.snapshots.Put(request.Context(), table, id, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// resultStored reports the key a result was stored under.
type resultStored struct {
	Key string `json:"key"`
}

/*
PUT /api/v1/state/results/{path...}?{query}.

Description: Stores a paginated result under the canonical key of the query
formed by the path and the query string, e.g.
/state/results/entities?q=acme&filter:schema=Email.

Response:
  - 200: resultStored
*/
func (handler *Handler) putResult(table state.Table) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		payload, err := requestutil.RawJSON(writer, request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		q, err := parseQuery(request, requestutil.Param(request, "*"), "")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		key, err := handler.snapshots.PutResult(request.Context(), table, q, payload)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, resultStored{Key: key})
	}
}
