package common

import (
	"github.com/JENAI-COMPANY/jenai-sub002/constant"

	"github.com/gin-gonic/gin"
)

func SetContextKey(c *gin.Context, key constant.ContextKey, value interface{}) {
	c.Set(string(key), value)
}

func GetContextKeyInt(c *gin.Context, key constant.ContextKey) int {
	return c.GetInt(string(key))
}

func GetContextKeyString(c *gin.Context, key constant.ContextKey) string {
	return c.GetString(string(key))
}
