package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/odhiambo-ed/ReUbuntu/controllers"
)

// Register wires the upload and pricing endpoints onto the engine.
func Register(r *gin.Engine, uploads *controllers.UploadController, pricing *controllers.PricingController) {
	uploadGroup := r.Group("/uploads")
	{
		uploadGroup.POST("/process", uploads.ProcessUpload)
		uploadGroup.GET("/:id", uploads.GetUpload)
		uploadGroup.GET("/:id/errors", uploads.ListUploadErrors)
	}

	pricingGroup := r.Group("/pricing")
	{
		pricingGroup.GET("/config", pricing.GetConfig)
		pricingGroup.POST("/calculate", pricing.Calculate)
	}
}
