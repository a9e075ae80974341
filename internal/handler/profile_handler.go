package handler

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/JayWelborn/Rango/internal/db"
	"github.com/JayWelborn/Rango/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"gorm.io/gorm"
)

const avatarSize = 128

// ShowProfile renders a user's public profile.
func (a *API) ShowProfile(c *gin.Context) {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		c.HTML(http.StatusNotFound, "profile.html", gin.H{"error": "profile not found"})
		return
	}

	var user db.User
	if err := a.db.First(&user, userID).Error; err != nil {
		c.HTML(http.StatusNotFound, "profile.html", gin.H{"error": "profile not found"})
		return
	}

	var profile db.UserProfile
	if err := a.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusInternalServerError, "profile.html", gin.H{"error": "failed to load profile"})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":    user,
		"profile": profile,
	})
}

// ShowEditProfile renders the edit form for the logged-in user.
func (a *API) ShowEditProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var profile db.UserProfile
	if err := a.db.Where("user_id = ?", userID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusInternalServerError, "edit_profile.html", gin.H{"error": "failed to load profile"})
		return
	}

	c.HTML(http.StatusOK, "edit_profile.html", gin.H{"profile": profile})
}

// EditProfile saves the website and optional picture for the logged-in user.
// Website URLs get the same http:// normalization as catalogued pages.
func (a *API) EditProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	website := service.NormalizeURL(c.PostForm("website"))

	var profile db.UserProfile
	err := a.db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = db.UserProfile{UserID: userID}
	case err != nil:
		c.HTML(http.StatusInternalServerError, "edit_profile.html", gin.H{"error": "failed to load profile"})
		return
	}

	profile.Website = website

	if file, err := c.FormFile("picture"); err == nil {
		pictureURL, err := a.saveAvatar(file)
		if err != nil {
			c.HTML(http.StatusBadRequest, "edit_profile.html", gin.H{
				"error":   "could not process that picture",
				"profile": profile,
			})
			return
		}
		profile.Picture = pictureURL
	}

	if err := a.db.Save(&profile).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "edit_profile.html", gin.H{"error": "failed to save profile"})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%d", userID))
}

// saveAvatar decodes the upload, scales it down to a square thumbnail, and
// writes it under a collision-free name. Returns the public URL path.
func (a *API) saveAvatar(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	decoded, _, err := image.Decode(src)
	if err != nil {
		return "", err
	}

	thumb := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), decoded, decoded.Bounds(), draw.Over, nil)

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("avatar-%s.png", uuid.New().String())
	out, err := os.Create(filepath.Join(a.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := png.Encode(out, thumb); err != nil {
		return "", err
	}

	return strings.TrimRight(a.uploadURL, "/") + "/" + name, nil
}

// ListUsers shows every registered user.
func (a *API) ListUsers(c *gin.Context) {
	var users []db.User
	if err := a.db.Order("username ASC").Find(&users).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "list_users.html", gin.H{"error": "failed to load users"})
		return
	}

	c.HTML(http.StatusOK, "list_users.html", gin.H{"users": users})
}
