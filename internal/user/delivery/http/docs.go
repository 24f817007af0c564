package http

// Register godoc
// @Summary Register a new customer
// @Description Create a customer account with username, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,first_name=string,last_name=string} true "Customer registration data"
// @Success 201 {object} object{id=int,username=string,email=string,first_name=string,last_name=string,date_joined=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *CustomerHandler) RegisterDoc() {}

// Login godoc
// @Summary Login a customer
// @Description Authenticate with username and password, returns a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,customer=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *CustomerHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get own profile
// @Description Retrieve the authenticated customer's profile
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string,email=string}
// @Failure 401 {object} object{error=string}
// @Router /users/me [get]
func (h *CustomerHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Partially update the authenticated customer's profile; empty fields are left unchanged
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,first_name=string,last_name=string} true "Fields to update"
// @Success 200 {object} object{id=int,username=string,email=string}
// @Failure 403 {object} object{error=string}
// @Router /users/me [put]
func (h *CustomerHandler) UpdateProfileDoc() {}

// DeleteProfile godoc
// @Summary Delete own account
// @Description Delete the authenticated customer's account together with all their favorites
// @Tags Customers
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} object{error=string}
// @Router /users/me [delete]
func (h *CustomerHandler) DeleteProfileDoc() {}

// GetCustomer godoc
// @Summary Get a customer by ID
// @Description Retrieve a customer profile by ID
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} object{id=int,username=string,email=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id} [get]
func (h *CustomerHandler) GetCustomerDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string}
// @Failure 503 {object} object{status=string,error=string}
// @Router /health [get]
func (h *CustomerHandler) HealthCheckDoc() {}
