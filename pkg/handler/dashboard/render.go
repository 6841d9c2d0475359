package dashboard

import (
	"embed"
	"html/template"
	"log"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutName = "layout"

// 每个页面与 layout.html 组成独立的模板集，页面都定义名为 "content" 的块
var pageNames = []string{"index.html", "list.html", "form.html", "confirm.html", "message.html", "login.html"}

// Renderer 实现 gin 的 render.HTMLRender
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer 解析内嵌模板，模板有误时 panic
func NewRenderer() *Renderer {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		r.pages[name] = template.Must(
			template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name),
		)
	}
	return r
}

func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Printf("[Dashboard] ⚠️ 模板 %s 不存在，改用 message.html", name)
		tmpl = r.pages["message.html"]
	}
	return render.HTML{Template: tmpl, Name: layoutName, Data: data}
}
