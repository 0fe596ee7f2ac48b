package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/middleware"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

// AuthHandler lida com cadastro, login e perfil do usuário autenticado
type AuthHandler struct {
	authService  *services.AuthService
	secureCookie bool
}

// NewAuthHandler cria um novo AuthHandler. secureCookie marca o cookie de sessão como Secure (produção).
func NewAuthHandler(authService *services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// Register cadastra um passageiro
// @Summary      Cadastro de passageiro
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Dados do passageiro"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	h.respond(c, http.StatusCreated, result)
}

// Login autentica com email e senha
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	h.respond(c, http.StatusOK, result)
}

// Me retorna o usuário do token
// @Summary      Usuário autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), id.UserID)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// respond devolve o token no corpo e também no cookie lido pelas rotas de página
func (h *AuthHandler) respond(c *gin.Context, status int, result *services.AuthResult) {
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, result.Token, maxAge, "/", "", h.secureCookie, true)

	c.JSON(status, dto.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserResponse(result.User),
	})
}
