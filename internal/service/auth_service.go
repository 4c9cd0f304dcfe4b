package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/naimp074/stock1/internal/config"
	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/model"
	"github.com/naimp074/stock1/internal/repository"
)

// costoBcrypt sube el default de la librería; los logins son poco frecuentes
// y el hash más caro no molesta.
const costoBcrypt = 12

var errCredenciales = errors.New("credenciales invalidas")

// AuthService emite y renueva tokens JWT y administra las cuentas de la
// aplicación. La gestión de usuarios queda detrás del rol administrador en
// el router.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
}

func NewAuthService(usuarios repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarios: usuarios, cfg: cfg}
}

type authService struct {
	usuarios repository.UsuarioRepository
	cfg      *config.Config
}

// Login valida las credenciales y devuelve el par access/refresh. Usuario
// inexistente y password incorrecta responden el mismo mensaje para no
// regalar información.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errCredenciales
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)) != nil {
		return nil, errCredenciales
	}
	return s.emitirTokens(usuario)
}

// Refresh acepta cualquier token vigente firmado con nuestro secreto y
// emite un par nuevo, siempre que la cuenta siga activa.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	crudo, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	id, err := uuid.Parse(crudo)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil || !usuario.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.emitirTokens(usuario)
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), costoBcrypt)
	if err != nil {
		return nil, err
	}
	usuario := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioADTO(usuario)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, len(usuarios))
	for i := range usuarios {
		out[i] = usuarioADTO(&usuarios[i])
	}
	return out, nil
}

// ActualizarUsuario aplica solo los campos presentes; una password nueva se
// re-hashea, nunca se guarda en claro.
func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}

	if req.Nombre != "" {
		usuario.Nombre = req.Nombre
	}
	if req.Email != nil {
		usuario.Email = req.Email
	}
	if req.Rol != "" {
		usuario.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), costoBcrypt)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}

	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	resp := usuarioADTO(usuario)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.Desactivar(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.usuarios.Reactivar(ctx, id)
}

// emitirTokens arma la respuesta de login completa: access corto, refresh
// largo, ambos firmados con HS256 sobre los mismos claims.
func (s *authService) emitirTokens(usuario *model.Usuario) (*dto.LoginResponse, error) {
	access, err := s.firmar(usuario, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmar(usuario, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioADTO(usuario),
	}, nil
}

func (s *authService) firmar(usuario *model.Usuario, vigencia time.Duration) (string, error) {
	ahora := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  usuario.ID.String(),
		"username": usuario.Username,
		"rol":      usuario.Rol,
		"iat":      ahora.Unix(),
		"exp":      ahora.Add(vigencia).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioADTO(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
