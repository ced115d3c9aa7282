package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReloadCatalog drops the catalog caches after ops edits the pricing sheet;
// the next search refetches both catalogs.
func ReloadCatalog(c *gin.Context) {
	CatalogStore.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
}
