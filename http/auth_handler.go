package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/session"
)

type AuthDeps struct {
	Sessions     *session.Manager
	Views        *Views
	CookieSecure bool
}

type loginView struct {
	Email string
}

type signupView struct {
	Username  string
	Email     string
	Verifying bool
}

func RegisterAuth(r chi.Router, d AuthDeps) {
	r.Get("/login", func(w http.ResponseWriter, req *http.Request) {
		if session.FromContext(req.Context()).Authenticated() {
			http.Redirect(w, req, "/", http.StatusSeeOther)
			return
		}
		d.Views.Render(w, req, http.StatusOK, "login.html", pageData{Title: "Log in", Body: loginView{}})
	})

	r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
		email, password := formValue(req, "email"), req.PostFormValue("password")
		if email == "" || password == "" {
			d.Views.Render(w, req, http.StatusBadRequest, "login.html", pageData{
				Title: "Log in", Error: "Email and password are required", Body: loginView{Email: email},
			})
			return
		}

		s, err := d.Sessions.Login(req.Context(), email, password)
		if err != nil {
			logger.From(req.Context()).Info("login failed", "email", email, "err", err)
			d.Views.Render(w, req, http.StatusUnauthorized, "login.html", pageData{
				Title: "Log in", Error: session.Message(err, "Login failed"), Body: loginView{Email: email},
			})
			return
		}
		// Replace any previous session for this browser.
		if old := session.SID(req); old != "" {
			_ = d.Sessions.Logout(req.Context(), old)
		}
		session.SetCookie(w, s.ID, d.Sessions.TTL(), d.CookieSecure)
		http.Redirect(w, req, "/", http.StatusSeeOther)
	})

	r.Get("/signup", func(w http.ResponseWriter, req *http.Request) {
		d.Views.Render(w, req, http.StatusOK, "signup.html", pageData{Title: "Sign up", Body: signupView{}})
	})

	r.Post("/signup", func(w http.ResponseWriter, req *http.Request) {
		view := signupView{Username: formValue(req, "username"), Email: formValue(req, "email")}
		password := req.PostFormValue("password")
		if view.Username == "" || view.Email == "" || password == "" {
			d.Views.Render(w, req, http.StatusBadRequest, "signup.html", pageData{
				Title: "Sign up", Error: "All fields are required", Body: view,
			})
			return
		}

		res, err := d.Sessions.Signup(req.Context(), view.Username, view.Email, password)
		if err != nil {
			logger.From(req.Context()).Info("signup failed", "email", view.Email, "err", err)
			d.Views.Render(w, req, http.StatusBadRequest, "signup.html", pageData{
				Title: "Sign up", Error: session.Message(err, "Signup failed"), Body: view,
			})
			return
		}
		if res.Email != "" {
			view.Email = res.Email
		}
		view.Verifying = true
		d.Views.Render(w, req, http.StatusOK, "signup.html", pageData{Title: "Verify", Flash: res.Message, Body: view})
	})

	r.Post("/verify", func(w http.ResponseWriter, req *http.Request) {
		view := signupView{Email: formValue(req, "email"), Verifying: true}
		msg, err := d.Sessions.Verify(req.Context(), view.Email, formValue(req, "verificationCode"))
		if err != nil {
			d.Views.Render(w, req, http.StatusBadRequest, "signup.html", pageData{
				Title: "Verify", Error: session.Message(err, "Verification failed"), Body: view,
			})
			return
		}
		if msg == "" {
			msg = "Account verified. You can log in now."
		}
		d.Views.Render(w, req, http.StatusOK, "login.html", pageData{Title: "Log in", Flash: msg, Body: loginView{Email: view.Email}})
	})

	r.Post("/verify/resend", func(w http.ResponseWriter, req *http.Request) {
		view := signupView{Email: formValue(req, "email"), Verifying: true}
		msg, err := d.Sessions.ResendVerification(req.Context(), view.Email)
		data := pageData{Title: "Verify", Flash: msg, Body: view}
		status := http.StatusOK
		if err != nil {
			data.Flash, data.Error = "", session.Message(err, "Could not resend the code")
			status = http.StatusBadRequest
		}
		d.Views.Render(w, req, status, "signup.html", data)
	})

	r.Post("/logout", func(w http.ResponseWriter, req *http.Request) {
		if err := d.Sessions.Logout(req.Context(), session.SID(req)); err != nil {
			logger.From(req.Context()).Warn("logout failed", "err", err)
		}
		session.ClearCookie(w, d.CookieSecure)
		http.Redirect(w, req, "/", http.StatusSeeOther)
	})
}

func formValue(req *http.Request, key string) string {
	return strings.TrimSpace(req.PostFormValue(key))
}
