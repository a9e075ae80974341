package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JayWelborn/Rango/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ShowRegister renders the registration form.
func (a *API) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates an account, logs the new user in, and sends them home.
func (a *API) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error":    "username and password are required",
			"username": username,
			"email":    email,
		})
		return
	}

	var existing db.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"error":    "that username is taken",
			"username": username,
			"email":    email,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"error": "registration failed"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"error": "registration failed"})
		return
	}

	user := db.User{Username: username, Email: email, Password: string(hashed)}
	if err := a.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"error": "registration failed"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"error": "session save failed"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ShowLogin renders the login form.
func (a *API) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login checks credentials and opens a session.
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "invalid username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "session save failed"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the index.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// Restricted is a minimal page only reachable when logged in.
func (a *API) Restricted(c *gin.Context) {
	session := sessions.Default(c)
	c.HTML(http.StatusOK, "restricted.html", gin.H{
		"username": session.Get("username"),
	})
}

// AuthRequired redirects anonymous visitors to the login page.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID pulls the logged-in user's id out of the session.
func currentUserID(c *gin.Context) (uint, bool) {
	raw := sessions.Default(c).Get("user_id")
	id, ok := raw.(uint)
	return id, ok
}
