package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// Start restores the persisted session of the browser and loads what its
// role needs. It runs once per coordinator; concurrent callers wait until the
// first run has finished.
func (c *Coordinator) Start(ctx context.Context) {
	c.startOnce.Do(func() { c.restore(ctx) })
}

func (c *Coordinator) restore(ctx context.Context) {
	darkMode := c.storage.DarkMode(ctx)
	c.mu.Lock()
	c.darkMode = darkMode
	c.mu.Unlock()

	access := c.storage.AccessToken(ctx)
	if access != "" && c.storage.RefreshToken(ctx) == "" && c.tokens.IsExpired(access, c.now()) {
		utils.LogMessageWithFields(ctx, "info", "Discarding expired access credential")
		c.clearStorage(ctx)
		access = ""
	}

	if access == "" {
		c.LoadUsers(ctx)
		return
	}

	user, complete, appErr := c.fetchCurrentUser(ctx)
	if appErr != nil {
		if appErr.Code == schemas.CodeUnauthorized {
			c.clearStorage(ctx)
		}
		c.LoadUsers(ctx)
		return
	}

	c.establishSession(ctx, user, access, c.storage.RefreshToken(ctx), !complete)
	c.loadForRole(ctx, user.Role)
}

// Login signs in with email and password.
func (c *Coordinator) Login(ctx context.Context, req schemas.LoginRequest) *schemas.AppError {
	const title = "Login failed"

	if !utils.GetValidator().VerifyEmail(req.Email) {
		return c.reject(ctx, schemas.CodeValidationError, title, schemas.MessageInvalidEmail)
	}

	c.setLoading(loadingAuth, true)
	defer c.setLoading(loadingAuth, false)

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Post(ctx, pathLogin, schemas.LoginBody{Email: req.Email, Password: req.Password})
	})
	if appErr != nil {
		return appErr
	}

	user, appErr := c.signIn(ctx, body, title)
	if appErr != nil {
		return appErr
	}

	c.notify("Welcome back!", fmt.Sprintf("Logged in as %s", user.Name))
	c.loadForRole(ctx, user.Role)
	return nil
}

// Register creates an account. When the backend signs the new member in
// right away the session starts, otherwise the login page is shown.
func (c *Coordinator) Register(ctx context.Context, req schemas.RegistrationRequest) *schemas.AppError {
	const title = "Registration failed"

	c.setLoading(loadingAuth, true)
	defer c.setLoading(loadingAuth, false)

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Post(ctx, pathRegister, req)
	})
	if appErr != nil {
		return appErr
	}

	var tokens schemas.TokenPairDTO
	if err := json.Unmarshal(body, &tokens); err != nil || tokens.AccessCredential() == "" {
		c.mu.Lock()
		c.page = schemas.PageLogin
		c.scrollToTop = true
		c.pushNotice("Account created!", "Please log in to continue.", "")
		c.mu.Unlock()
		return nil
	}

	user, appErr := c.signIn(ctx, body, title)
	if appErr != nil {
		return appErr
	}

	c.notify("Account created!", "Welcome to SkillSwap! Start exploring skills to learn.")
	c.loadForRole(ctx, user.Role)
	return nil
}

// Logout ends the session locally. Persisted credentials, the saved user and
// the admin cache are always cleared.
func (c *Coordinator) Logout(ctx context.Context) {
	c.clearStorage(ctx)

	c.mu.Lock()
	c.resetSessionState()
	c.page = schemas.PageHome
	c.scrollToTop = true
	c.pushNotice("Logged out", "Thanks for using SkillSwap!", "")
	c.mu.Unlock()

	c.LoadUsers(ctx)
}

// signIn persists the credentials of a login or registration response and
// establishes the session.
func (c *Coordinator) signIn(ctx context.Context, body []byte, title string) (*schemas.User, *schemas.AppError) {
	var tokens schemas.TokenPairDTO
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, c.invalidResponse(ctx, title, err)
	}

	access := tokens.AccessCredential()
	if access == "" {
		return nil, c.invalidResponse(ctx, title, fmt.Errorf("no access credential in response"))
	}
	refresh := tokens.RefreshCredential()

	if err := c.storage.SetTokens(ctx, access, refresh); err != nil {
		appErr := utils.ParseAPIError(err)
		c.failureHandler(ctx, title)(appErr)
		return nil, appErr
	}

	var user schemas.User
	var complete bool
	if tokens.User != nil {
		user = utils.NormalizeUser(*tokens.User)
		complete = utils.PayloadHasProfileFields(*tokens.User)
	} else {
		fetched, fetchedComplete, appErr := c.fetchCurrentUser(ctx)
		if appErr != nil {
			c.clearStorage(ctx)
			return nil, appErr
		}
		user, complete = fetched, fetchedComplete
	}

	c.establishSession(ctx, user, access, refresh, !complete)
	return &user, nil
}

// fetchCurrentUser loads the signed-in user's full record.
func (c *Coordinator) fetchCurrentUser(ctx context.Context) (schemas.User, bool, *schemas.AppError) {
	const title = "Could not load your account"

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Get(ctx, pathCurrentUser, nil)
	})
	if appErr != nil {
		return schemas.User{}, false, appErr
	}

	user, complete, err := c.decodeUser(body)
	if err != nil {
		return schemas.User{}, false, c.invalidResponse(ctx, title, err)
	}
	return user, complete, nil
}

func (c *Coordinator) establishSession(ctx context.Context, user schemas.User, access, refresh string, partial bool) {
	c.mu.Lock()
	c.session = &schemas.Session{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		Partial:      partial,
	}
	c.profileLoad = profileLoadState{}
	c.page = landingPage(c.session.Role())
	c.scrollToTop = true
	c.mu.Unlock()

	if err := c.storage.SetSavedUser(ctx, user); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not persist session user", err)
	}
}

// loadForRole fills the collections a freshly established session shows first.
func (c *Coordinator) loadForRole(ctx context.Context, role schemas.Role) {
	if role == schemas.RoleAdmin {
		c.LoadAdminData(ctx, false)
		return
	}
	c.LoadNotifications(ctx)
	c.LoadSwapRequests(ctx)
	c.LoadUsers(ctx)
}
