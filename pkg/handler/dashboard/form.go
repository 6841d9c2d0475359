// pkg/handler/dashboard/form.go
package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-cms/internal/pkg/utils"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/content"
	"github.com/anzhiyu-c/anheyu-cms/pkg/service/upload"

	"github.com/gin-gonic/gin"
)

const (
	// 图片字段附带的文件输入框和移除复选框的后缀
	fileSuffix   = "__file"
	removeSuffix = "__remove"

	maxListColumns = 4
	maxCellRunes   = 60
)

// formField 是模板中的一个表单控件
type formField struct {
	content.Field
	Input   string
	Step    string
	Value   string
	Checked bool
	Options []content.Option
}

type formView struct {
	Action string
	IsEdit bool
	Fields []formField
}

// inputType 把字段类型映射为表单控件
func inputType(kind content.FieldKind) (input string, step string) {
	switch kind {
	case content.KindBool:
		return "checkbox", ""
	case content.KindTextarea, content.KindRichText, content.KindMarkdown:
		return "textarea", ""
	case content.KindSelect:
		return "select", ""
	case content.KindImage:
		return "image", ""
	case content.KindEmail:
		return "email", ""
	case content.KindURL:
		return "url", ""
	case content.KindNumber:
		return "number", "1"
	case content.KindDecimal:
		return "number", "any"
	}
	return "text", ""
}

// buildForm 用 values 填充表单，values 为 nil 时生成空表单
func buildForm(ctx context.Context, section content.Section, action string, isEdit bool, values content.Record) formView {
	view := formView{Action: action, IsEdit: isEdit}
	for _, f := range section.Fields {
		input, step := inputType(f.Kind)
		field := formField{Field: f, Input: input, Step: step}
		if values != nil {
			field.Value = values.String(f.Name)
			field.Checked = values.Bool(f.Name)
		}
		if f.Kind == content.KindSelect && f.Options != nil {
			opts, err := f.Options(ctx)
			if err != nil {
				log.Printf("[Dashboard] ⚠️ 加载字段 %s 的选项失败: %v", f.Name, err)
			}
			field.Options = opts
		}
		view.Fields = append(view.Fields, field)
	}
	return view
}

// formValues 读取提交的表单。图片字段有新文件时先上传，用返回的地址替换原值。
// 上传成功但记录保存失败时，文件由孤儿清理任务回收。出错时返回已读取的值用于回显。
func formValues(c *gin.Context, section content.Section, uploadSvc upload.IUploadService) (map[string]string, error) {
	values := make(map[string]string, len(section.Fields))
	for _, f := range section.Fields {
		if f.Kind != content.KindImage {
			if v, ok := c.GetPostForm(f.Name); ok {
				values[f.Name] = v
			}
			continue
		}

		current := c.PostForm(f.Name)
		if c.PostForm(f.Name+removeSuffix) != "" {
			current = ""
		}
		if fh, err := c.FormFile(f.Name + fileSuffix); err == nil && fh.Size > 0 {
			file, err := fh.Open()
			if err != nil {
				return values, fmt.Errorf("读取 %s 的上传文件失败: %w", f.Label, err)
			}
			record, err := uploadSvc.Upload(c.Request.Context(), &upload.Request{
				Section:     string(section.Key),
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Reader:      file,
			})
			file.Close()
			if err != nil {
				return values, fmt.Errorf("上传 %s 失败: %w", f.Label, err)
			}
			current = record.URL
		}
		values[f.Name] = current
	}
	return values, nil
}

// recordFromValues 把提交的表单值转换为 Record，用于出错后回显
func recordFromValues(section content.Section, values map[string]string) content.Record {
	rec := make(content.Record, len(values))
	for _, f := range section.Fields {
		v, ok := values[f.Name]
		if f.Kind == content.KindBool {
			rec[f.Name] = ok && v != "" && v != "false" && v != "0"
			continue
		}
		if ok {
			rec[f.Name] = v
		}
	}
	return rec
}

// listColumn / listCell / listRow 是列表页的展示结构
type listColumn struct {
	Name  string
	Label string
	Image bool
}

type listCell struct {
	Value string
	Image bool
}

type listRow struct {
	ID        uint
	Title     string
	Cells     []listCell
	UpdatedAt string
}

// listColumns 选出列表中展示的字段，长文本不展示
func listColumns(section content.Section) []listColumn {
	var cols []listColumn
	for _, f := range section.Fields {
		switch f.Kind {
		case content.KindTextarea, content.KindRichText, content.KindMarkdown:
			continue
		}
		cols = append(cols, listColumn{Name: f.Name, Label: f.Label, Image: f.Kind == content.KindImage})
		if len(cols) == maxListColumns {
			break
		}
	}
	return cols
}

func buildRows(section content.Section, cols []listColumn, items []any) []listRow {
	rows := make([]listRow, 0, len(items))
	for _, item := range items {
		rec, err := content.ToRecord(item)
		if err != nil {
			log.Printf("[Dashboard] ⚠️ 转换 %s 记录失败: %v", section.Key, err)
			continue
		}
		row := listRow{
			ID:        rec.ID(),
			Title:     rec.String(section.TitleField),
			UpdatedAt: displayTime(rec.String("updated_at")),
		}
		for _, col := range cols {
			value := rec.String(col.Name)
			if !col.Image {
				value = strutil.Truncate(value, maxCellRunes)
			}
			row.Cells = append(row.Cells, listCell{Value: value, Image: col.Image})
		}
		rows = append(rows, row)
	}
	return rows
}

// displayTime 把 JSON 中的 RFC3339 时间转换为北京时间显示
func displayTime(raw string) string {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return utils.FormatInChina(t)
}
