package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tienditamejorada/tiendita-backend/pkg/auth/session"
	"github.com/tienditamejorada/tiendita-backend/pkg/config"
	"github.com/tienditamejorada/tiendita-backend/pkg/db"
	"github.com/tienditamejorada/tiendita-backend/pkg/db/models"
	"github.com/tienditamejorada/tiendita-backend/pkg/enums"
	apperrors "github.com/tienditamejorada/tiendita-backend/pkg/errors"
	"github.com/tienditamejorada/tiendita-backend/pkg/security"
)

var testPasswordCfg = config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}

type stubUsers struct {
	user *UsuarioConTienda
	err  error
}

func (s *stubUsers) FindActiveByUsername(_ context.Context, _ string) (*UsuarioConTienda, error) {
	return s.user, s.err
}

type stubSessions struct {
	token   string
	created uint
	revoked []string
}

func (s *stubSessions) Create(_ context.Context, usuarioID uint, _ session.Metadata) (string, error) {
	s.created = usuarioID
	return s.token, nil
}

func (s *stubSessions) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	return hash
}

func buildUser(t *testing.T, password string) *UsuarioConTienda {
	t.Helper()
	return &UsuarioConTienda{
		Usuario: models.Usuario{
			ID:             7,
			TiendaID:       3,
			Username:       "ana",
			PasswordHash:   mustHashPassword(t, password),
			NombreCompleto: "Ana García",
			Email:          "ana@example.com",
			Rol:            enums.RoleJefe,
			Estado:         enums.RecordActivo,
		},
		TiendaNombre: "Tienda A",
	}
}

func TestLoginSuccess(t *testing.T) {
	sessions := &stubSessions{token: "tok-123"}
	svc := NewService(ServiceParams{
		Users:    &stubUsers{user: buildUser(t, "secreta1")},
		Sessions: sessions,
	})

	res, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secreta1"}, session.Metadata{IP: "1.2.3.4"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-123" {
		t.Fatalf("expected stub token, got %q", res.Token)
	}
	if sessions.created != 7 {
		t.Fatalf("expected session for user 7, got %d", sessions.created)
	}
	if res.User.TiendaNombre != "Tienda A" || res.User.TiendaID != 3 {
		t.Fatalf("unexpected user payload: %+v", res.User)
	}
	if res.User.Rol != enums.RoleJefe {
		t.Fatalf("expected rol jefe, got %s", res.User.Rol)
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	unknown := &stubUsers{err: gorm.ErrRecordNotFound}
	wrongPassword := &stubUsers{user: buildUser(t, "otra-clave")}

	for name, users := range map[string]userFinder{
		"unknown user":   unknown,
		"wrong password": wrongPassword,
	} {
		svc := NewService(ServiceParams{Users: users, Sessions: &stubSessions{}})
		_, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "secreta1"}, session.Metadata{})
		if apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
			t.Fatalf("%s: expected unauthorized, got %v", name, err)
		}
		typed := apperrors.As(err)
		if typed == nil || typed.Message() != invalidCredentialsMessage {
			t.Fatalf("%s: expected generic message, got %v", name, err)
		}
	}
}

func TestLoginPropagatesLookupErrors(t *testing.T) {
	svc := NewService(ServiceParams{
		Users:    &stubUsers{err: errors.New("db down")},
		Sessions: &stubSessions{},
	})
	_, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "x"}, session.Metadata{})
	if apperrors.CodeOf(err) != apperrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewService(ServiceParams{Users: &stubUsers{}, Sessions: sessions})

	if err := svc.Logout(context.Background(), "tok-9"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "tok-9" {
		t.Fatalf("expected revoke call, got %+v", sessions.revoked)
	}
}

func newRegisterService(t *testing.T) (RegisterService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Tienda{}, &models.Usuario{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	svc := NewRegisterService(RegisterServiceParams{
		Client:         db.NewWithConn(conn),
		Repo:           NewRepository(conn),
		PasswordConfig: testPasswordCfg,
	})
	return svc, conn
}

func TestRegisterCreatesTiendaAndOwner(t *testing.T) {
	svc, conn := newRegisterService(t)

	res, err := svc.Register(context.Background(), RegisterRequest{
		Username:       "ana",
		Password:       "x",
		NombreCompleto: "Ana",
		Email:          "a@b.com",
		TiendaNombre:   "Tienda A",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.UserID != 1 || res.TiendaID != 1 {
		t.Fatalf("expected first ids 1/1, got %d/%d", res.UserID, res.TiendaID)
	}

	var jefe models.Usuario
	if err := conn.First(&jefe, res.UserID).Error; err != nil {
		t.Fatalf("loading owner: %v", err)
	}
	if jefe.Rol != enums.RoleJefe || jefe.TiendaID != res.TiendaID {
		t.Fatalf("unexpected owner row: %+v", jefe)
	}
	ok, err := security.VerifyPassword("x", jefe.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected owner password to verify, ok=%v err=%v", ok, err)
	}

	var tienda models.Tienda
	if err := conn.First(&tienda, res.TiendaID).Error; err != nil {
		t.Fatalf("loading tienda: %v", err)
	}
	if tienda.Nombre != "Tienda A" || tienda.Email != "a@b.com" {
		t.Fatalf("unexpected tienda row: %+v", tienda)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, conn := newRegisterService(t)

	req := RegisterRequest{
		Username:       "ana",
		Password:       "x",
		NombreCompleto: "Ana",
		Email:          "a@b.com",
		TiendaNombre:   "Tienda A",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	req.TiendaNombre = "Tienda B"
	_, err := svc.Register(context.Background(), req)
	if apperrors.CodeOf(err) != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed := apperrors.As(err); typed == nil || typed.Message() != "El username ya existe" {
		t.Fatalf("unexpected message: %v", err)
	}

	// The failed attempt must not have created a second tienda.
	var count int64
	if err := conn.Model(&models.Tienda{}).Count(&count).Error; err != nil {
		t.Fatalf("counting tiendas: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 tienda, got %d", count)
	}
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	svc, conn := newRegisterService(t)

	res, err := svc.Register(context.Background(), RegisterRequest{
		Username:       "roundtrip",
		Password:       "clave123",
		NombreCompleto: "Round Trip",
		Email:          "rt@example.com",
		TiendaNombre:   "Tienda RT",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := conn.AutoMigrate(&models.SesionUsuario{}); err != nil {
		t.Fatalf("migrating sessions: %v", err)
	}
	client := db.NewWithConn(conn)
	loginSvc := NewService(ServiceParams{
		Users:    NewRepository(conn),
		Sessions: session.NewManager(client, config.SessionConfig{}),
	})

	login, err := loginSvc.Login(context.Background(), LoginRequest{Username: "roundtrip", Password: "clave123"}, session.Metadata{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.TiendaID != res.TiendaID {
		t.Fatalf("expected token tienda %d, got %d", res.TiendaID, login.User.TiendaID)
	}

	// The minted token resolves back to the same tienda.
	mgr := session.NewManager(client, config.SessionConfig{})
	sess, err := mgr.Resolve(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sess.TiendaID != res.TiendaID {
		t.Fatalf("expected resolved tienda %d, got %d", res.TiendaID, sess.TiendaID)
	}
}
