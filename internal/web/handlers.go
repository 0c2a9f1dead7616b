// Package web serves the HTML navigation surface: the dashboard, the asset
// and user forms, the user table and the printable asset sheet.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/inventario/domain/entities"
	"github.com/satriahrh/inventario/internal/forms"
	"github.com/satriahrh/inventario/internal/locale"
	"github.com/satriahrh/inventario/internal/printsheet"
	"github.com/satriahrh/inventario/usecase"
)

// Settings are the site labels and links shown on the pages
type Settings struct {
	BaseURL  string
	Location string
	Site     string
	// Live reloads the dashboard and users table when the change feed
	// reports a mutation. Form pages never reload.
	Live bool
}

// Handler renders the HTML pages
type Handler struct {
	assets   *usecase.AssetService
	users    *usecase.UserService
	settings Settings
	renderer *Renderer
	logger   *zap.Logger
	now      func() time.Time
}

type option struct {
	Value string
	Label string
}

type page struct {
	Title   string
	Section string
	Live    bool
}

type dashboardPage struct {
	page
	Now       time.Time
	Location  string
	Dashboard *usecase.Dashboard
}

type assetFormPage struct {
	page
	Now      time.Time
	Site     string
	AssetID  string
	Values   map[string]string
	Errors   forms.Errors
	Types    []option
	Statuses []option
}

type sheetPage struct {
	Sheet *printsheet.Sheet
}

type usersPage struct {
	page
	Users        []*entities.User
	DeletePrompt string
}

type userFormPage struct {
	page
	UserID string
	Values map[string]string
	Errors forms.Errors
	Roles  []option
}

// NewHandler creates the HTML handler
func NewHandler(
	assets *usecase.AssetService,
	users *usecase.UserService,
	formatter *locale.Formatter,
	settings Settings,
	logger *zap.Logger,
) (*Handler, error) {
	renderer, err := NewRenderer(formatter)
	if err != nil {
		return nil, err
	}
	return &Handler{
		assets:   assets,
		users:    users,
		settings: settings,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Register installs the renderer and the page routes on e
func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = h.renderer

	e.GET("/", h.dashboard)

	e.GET("/assets/new", h.newAsset)
	e.POST("/assets", h.createAsset)
	e.POST("/assets/print", h.printDraft)
	e.GET("/assets/:id", h.editAsset)
	e.POST("/assets/:id", h.updateAsset)
	e.POST("/assets/:id/dispose", h.disposeAsset)
	e.GET("/assets/:id/print", h.printAsset)

	e.GET("/users", h.listUsers)
	e.GET("/users/new", h.newUser)
	e.POST("/users", h.createUser)
	e.GET("/users/:id/edit", h.editUser)
	e.POST("/users/:id", h.updateUser)
	e.POST("/users/:id/toggle", h.toggleUser)
	e.POST("/users/:id/delete", h.deleteUser)
}

func (h *Handler) page(title, section string) page {
	return page{Title: title, Section: section}
}

// listPage is a page showing collection state that may follow the change feed
func (h *Handler) listPage(title, section string) page {
	p := h.page(title, section)
	p.Live = h.settings.Live
	return p
}

func (h *Handler) dashboard(c echo.Context) error {
	filter, err := entities.ParseAssetFilter(c.QueryParam("q"), c.QueryParam("type"), c.QueryParam("disposed"))
	if err != nil {
		return h.fail(err)
	}

	dashboard, err := h.assets.Dashboard(c.Request().Context(), filter)
	if err != nil {
		return h.fail(err)
	}

	return c.Render(http.StatusOK, "dashboard", dashboardPage{
		page:      h.listPage("Inventario", "dashboard"),
		Now:       h.now(),
		Location:  h.settings.Location,
		Dashboard: dashboard,
	})
}

func (h *Handler) assetForm(id string, values map[string]string, errs forms.Errors) assetFormPage {
	title := "Registro de Activo"
	if id != "" {
		title = "Editar Activo"
	}
	return assetFormPage{
		page:     h.page(title, "assets"),
		Now:      h.now(),
		Site:     h.settings.Site,
		AssetID:  id,
		Values:   values,
		Errors:   errs,
		Types:    typeOptions(),
		Statuses: statusOptions(),
	}
}

func (h *Handler) newAsset(c echo.Context) error {
	values := map[string]string{
		forms.FieldType:   string(entities.AssetTypeComputer),
		forms.FieldStatus: string(entities.AssetStatusAvailable),
	}
	return c.Render(http.StatusOK, "asset_form", h.assetForm("", values, nil))
}

func (h *Handler) createAsset(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}

	if errs := forms.AssetSchema.Validate(values); len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "asset_form", h.assetForm("", values, errs))
	}

	_, err = h.assets.Create(c.Request().Context(), forms.DecodeAsset(values))
	var validation entities.ValidationErrors
	if errors.As(err, &validation) {
		return c.Render(http.StatusUnprocessableEntity, "asset_form", h.assetForm("", values, inlineErrors(validation)))
	}
	if err != nil {
		return h.fail(err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) editAsset(c echo.Context) error {
	asset, err := h.assets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(err)
	}
	return c.Render(http.StatusOK, "asset_form", h.assetForm(asset.ID, forms.AssetValues(asset), nil))
}

func (h *Handler) updateAsset(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	values, err := formValues(c)
	if err != nil {
		return err
	}

	if _, err := h.assets.Get(ctx, id); err != nil {
		return h.fail(err)
	}

	if errs := forms.AssetSchema.Validate(values); len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "asset_form", h.assetForm(id, values, errs))
	}

	patch := forms.DecodeAsset(values)
	// CreatedBy is fixed at registration
	patch.CreatedBy = nil

	_, err = h.assets.Update(ctx, id, patch)
	var validation entities.ValidationErrors
	if errors.As(err, &validation) {
		return c.Render(http.StatusUnprocessableEntity, "asset_form", h.assetForm(id, values, inlineErrors(validation)))
	}
	if err != nil {
		return h.fail(err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) disposeAsset(c echo.Context) error {
	if _, err := h.assets.Dispose(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// printDraft renders the sheet of the form as currently filled in. Nothing is
// validated or stored.
func (h *Handler) printDraft(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}

	draft := entities.NewAsset(forms.DecodeAsset(values))
	return h.renderSheet(c, *draft)
}

func (h *Handler) printAsset(c echo.Context) error {
	asset, err := h.assets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(err)
	}
	return h.renderSheet(c, *asset)
}

func (h *Handler) renderSheet(c echo.Context, asset entities.Asset) error {
	sheet, err := printsheet.Build(asset, h.settings.BaseURL, h.now())
	if err != nil {
		return h.fail(err)
	}
	return c.Render(http.StatusOK, "asset_sheet", sheetPage{Sheet: sheet})
}

func (h *Handler) listUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return h.fail(err)
	}
	return c.Render(http.StatusOK, "users", usersPage{
		page:         h.listPage("Usuarios", "users"),
		Users:        users,
		DeletePrompt: usecase.DeleteUserPrompt,
	})
}

func (h *Handler) userForm(id string, values map[string]string, errs forms.Errors) userFormPage {
	title := "Nuevo Usuario"
	if id != "" {
		title = "Editar Usuario"
	}
	return userFormPage{
		page:   h.page(title, "users"),
		UserID: id,
		Values: values,
		Errors: errs,
		Roles:  roleOptions(),
	}
}

func (h *Handler) newUser(c echo.Context) error {
	values := map[string]string{forms.FieldRole: string(entities.UserRoleUser)}
	return c.Render(http.StatusOK, "user_form", h.userForm("", values, nil))
}

func (h *Handler) createUser(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}

	if errs := forms.UserSchema.Validate(values); len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "user_form", h.userForm("", values, errs))
	}

	_, err = h.users.Create(c.Request().Context(), forms.DecodeUser(values))
	var validation entities.ValidationErrors
	if errors.As(err, &validation) {
		return c.Render(http.StatusUnprocessableEntity, "user_form", h.userForm("", values, inlineErrors(validation)))
	}
	if err != nil {
		return h.fail(err)
	}

	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Handler) editUser(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(err)
	}
	return c.Render(http.StatusOK, "user_form", h.userForm(user.ID, forms.UserValues(user), nil))
}

func (h *Handler) updateUser(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	values, err := formValues(c)
	if err != nil {
		return err
	}

	if _, err := h.users.Get(ctx, id); err != nil {
		return h.fail(err)
	}

	if errs := forms.UserSchema.Validate(values); len(errs) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "user_form", h.userForm(id, values, errs))
	}

	_, err = h.users.Update(ctx, id, forms.DecodeUser(values))
	var validation entities.ValidationErrors
	if errors.As(err, &validation) {
		return c.Render(http.StatusUnprocessableEntity, "user_form", h.userForm(id, values, inlineErrors(validation)))
	}
	if err != nil {
		return h.fail(err)
	}

	return c.Redirect(http.StatusSeeOther, "/users")
}

func (h *Handler) toggleUser(c echo.Context) error {
	if _, err := h.users.ToggleActive(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(err)
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

// deleteUser removes a user when the browser confirm() answer was yes
func (h *Handler) deleteUser(c echo.Context) error {
	answer := c.FormValue("confirm")
	confirm := usecase.ConfirmFunc(func(string) bool { return answer == "yes" })

	if _, err := h.users.Remove(c.Request().Context(), c.Param("id"), confirm); err != nil {
		return h.fail(err)
	}
	return c.Redirect(http.StatusSeeOther, "/users")
}

func formValues(c echo.Context) (map[string]string, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	return forms.Values(params), nil
}

// inlineErrors shows domain validation failures the same way as form ones
func inlineErrors(validation entities.ValidationErrors) forms.Errors {
	errs := forms.Errors{}
	for _, fe := range validation {
		errs[fe.Field] = forms.MessageInvalid
	}
	return errs
}

// fail maps domain errors onto HTTP errors for echo's error handler
func (h *Handler) fail(err error) error {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Recurso no encontrado").SetInternal(err)
	case errors.Is(err, entities.ErrInvalidFilter):
		return echo.NewHTTPError(http.StatusBadRequest, "Filtro inválido").SetInternal(err)
	default:
		h.logger.Error("Page request failed", zap.Error(err))
		return err
	}
}

func typeOptions() []option {
	out := make([]option, len(entities.AssetTypes))
	for i, t := range entities.AssetTypes {
		out[i] = option{Value: string(t), Label: TypeLabel(t)}
	}
	return out
}

func statusOptions() []option {
	out := make([]option, len(entities.AssetStatuses))
	for i, s := range entities.AssetStatuses {
		out[i] = option{Value: string(s), Label: StatusLabel(s)}
	}
	return out
}

func roleOptions() []option {
	out := make([]option, len(entities.UserRoles))
	for i, r := range entities.UserRoles {
		out[i] = option{Value: string(r), Label: RoleLabel(r)}
	}
	return out
}
