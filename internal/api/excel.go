package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"carboncampus/internal/excel"
)

// ExportWorkbook 導出當前活動數據為 Excel 文件
// GET /api/inventory/:version/export
func (h *Handler) ExportWorkbook(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	snap := store.Snapshot()
	f, err := excel.Export(snap, entry)
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成文件失敗: " + err.Error()})
		return
	}

	filename := excel.Filename(snap.Version, snap.Year)
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportWorkbook 導入 Excel 文件回填活動數據
// 整檔校驗通過後一次性應用；任一錯誤則存儲保持原狀
// POST /api/inventory/:version/import  (multipart 字段名 file)
func (h *Handler) ImportWorkbook(c *gin.Context) {
	store, entry, ok := h.resolve(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上傳文件: " + err.Error()})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "讀取上傳文件失敗: " + err.Error()})
		return
	}
	defer src.Close()

	patch, err := excel.Import(src, store.Snapshot(), entry)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := store.ApplyImport(patch); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "導入成功",
		"sheets":    patch.SheetsSeen,
		"items":     len(patch.Items),
		"monthly":   len(patch.Monthly),
		"inventory": buildInventoryView(store.Snapshot(), entry),
	})
}
