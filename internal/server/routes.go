package server

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/password/forgot", s.ForgotPassword)
	auth.POST("/password/reset", s.ResetPassword)

	authed := v1.Group("")
	authed.Use(s.RequireAuth())

	authed.POST("/auth/logout", s.Logout)
	authed.POST("/auth/email/verification", s.RequestEmailVerification)
	authed.POST("/auth/email/verify", s.VerifyEmail)

	// Reads are public; everything that writes requires a session.
	v1.GET("/categories", s.ListCategories)
	v1.GET("/categories/order/:column/:direction", s.ListCategories)
	v1.GET("/categories/:id", s.GetCategory)
	authed.POST("/categories", s.CreateCategory)
	authed.PATCH("/categories/:id", s.UpdateCategory)
	authed.DELETE("/categories/:id", s.DeleteCategory)

	v1.GET("/products", s.ListProducts)
	v1.GET("/products/order/:column/:direction", s.ListProducts)
	v1.GET("/products/:id", s.GetProduct)
	v1.GET("/products/:id/reviews", s.ListProductReviews)
	v1.GET("/products/:id/images", s.ListProductImages)
	authed.POST("/products", s.CreateProduct)
	authed.PATCH("/products/:id", s.UpdateProduct)
	authed.DELETE("/products/:id", s.DeleteProduct)
	authed.GET("/my/products", s.ListMyProducts)
	authed.GET("/my/products/order/:column/:direction", s.ListMyProducts)

	v1.GET("/warehouses", s.ListWarehouses)
	v1.GET("/warehouses/order/:column/:direction", s.ListWarehouses)
	v1.GET("/warehouses/:id", s.GetWarehouse)
	authed.POST("/warehouses", s.CreateWarehouse)
	authed.PATCH("/warehouses/:id", s.UpdateWarehouse)
	authed.DELETE("/warehouses/:id", s.DeleteWarehouse)
	authed.GET("/my/warehouses", s.ListMyWarehouses)
	authed.GET("/my/warehouses/order/:column/:direction", s.ListMyWarehouses)

	v1.GET("/offers", s.ListOffers)
	v1.GET("/offers/order/:column/:direction", s.ListOffers)
	v1.GET("/offers/:id", s.GetOffer)
	authed.POST("/offers", s.CreateOffer)
	authed.PATCH("/offers/:id", s.UpdateOffer)
	authed.DELETE("/offers/:id", s.DeleteOffer)
	authed.GET("/my/offers", s.ListMyOffers)
	authed.GET("/my/offers/order/:column/:direction", s.ListMyOffers)

	authed.POST("/images", s.CreateImage)
	authed.PATCH("/images/:id", s.UpdateImage)
	authed.DELETE("/images/:id", s.DeleteImage)

	authed.PUT("/products/:id/expression", s.SetExpression)
	authed.GET("/products/:id/expression", s.GetMyExpression)

	v1.GET("/reviews/:id", s.GetReview)
	authed.POST("/reviews", s.CreateReview)
	authed.PATCH("/reviews/:id", s.UpdateReview)
	authed.DELETE("/reviews/:id", s.DeleteReview)
	authed.GET("/my/reviews", s.ListMyReviews)

	authed.POST("/comments", s.CreateComment)
	authed.PATCH("/comments/:id", s.UpdateComment)
	authed.DELETE("/comments/:id", s.DeleteComment)

	v1.GET("/contact-types", s.ListContactTypes)
	authed.POST("/contacts", s.CreateContact)
	authed.GET("/my/contacts", s.ListMyContacts)
	authed.PATCH("/contacts/:id", s.UpdateContact)
	authed.DELETE("/contacts/:id", s.DeleteContact)
}
