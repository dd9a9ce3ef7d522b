package server

import (
	"log/slog"
	"strconv"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// loginFailedMessage is deliberately identical for an unknown username and a
// wrong password, so the form cannot be used to enumerate usernames.
const loginFailedMessage = "Invalid login"

// SignupForm handles GET /signup
func (s *Server) SignupForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{})
}

// Signup handles POST /signup: validate the form, reject taken usernames,
// then create the user and establish a session.
func (s *Server) Signup(c *fiber.Ctx) error {
	form := validation.SignupForm{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
		Verify:   c.FormValue("verify"),
		Email:    c.FormValue("email"),
	}

	if errs := validation.CheckSignup(form); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors":   errs,
			"username": form.Username,
			"email":    form.Email,
		})
	}

	existing, err := s.userRepo.GetByUsername(c.Context(), form.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"errors": fiber.Map{
				"username": "That user already exists please choose different username.",
			},
			"username": form.Username,
			"email":    form.Email,
		})
	}

	hash, err := auth.HashPassword(form.Username, form.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:     form.Username,
		PasswordHash: hash,
		Email:        form.Email,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		// A concurrent signup can slip past the existence check; the unique
		// index reports it as a validation error.
		if models.IsCode(createErr, models.CodeValidation) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"errors":   fiber.Map{"username": createErr.(*models.AppError).Message},
				"username": form.Username,
				"email":    form.Email,
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	s.establishSession(c, user.ID)
	return c.Redirect("/")
}

// LoginForm handles GET /login, echoing back any denial message a redirect
// carried here.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"error": c.Query("error"),
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.Logins.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": loginFailedMessage})
	}

	ok, err := auth.VerifyPassword(username, password, user.PasswordHash)
	if err != nil {
		// A malformed stored credential is an operational problem, but the
		// response stays generic.
		middleware.Logger.ErrorContext(c.UserContext(), "stored credential unreadable",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()))
		observability.Logins.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": loginFailedMessage})
	}
	if !ok {
		observability.Logins.WithLabelValues("failure").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": loginFailedMessage})
	}

	observability.Logins.WithLabelValues("success").Inc()
	s.establishSession(c, user.ID)
	return c.Redirect("/")
}

// Logout handles GET /logout: clear the session cookie and go home.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/")
}

// establishSession sets the signed session cookie binding the user identity.
func (s *Server) establishSession(c *fiber.Ctx, userID uint) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    s.signer.Sign(strconv.FormatUint(uint64(userID), 10)),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSession removes the session by setting an empty cookie value.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
}
