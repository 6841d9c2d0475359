// anheyu-cms/pkg/service/utility/color.go
package utility

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp"
)

// DefaultPrimaryColor 无法识别图片时使用的主色调
const DefaultPrimaryColor = "#b4bfe2"

type ColorService struct{}

func NewColorService() *ColorService {
	return &ColorService{}
}

// GetPrimaryColor 从图片数据流中提取主色调，返回 #rrggbb
func (s *ColorService) GetPrimaryColor(reader io.Reader) (string, error) {
	imgData, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取图片数据失败: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return "", fmt.Errorf("解码图片失败: %w", err)
	}
	return s.PrimaryColorOf(img)
}

// PrimaryColorOf 使用 prominentcolor (K-Means) 计算已解码图片的主色调
func (s *ColorService) PrimaryColorOf(img image.Image) (string, error) {
	colors, err := prominentcolor.KmeansWithArgs(prominentcolor.ArgumentSeedRandom|prominentcolor.ArgumentNoCropping, img)
	if err != nil {
		return "", fmt.Errorf("使用 prominentcolor (K-Means) 提取主色调失败: %w", err)
	}
	if len(colors) == 0 {
		return "", fmt.Errorf("prominentcolor (K-Means) 未能找到任何主色调")
	}

	dominantColor := colors[0].Color
	return fmt.Sprintf("#%02x%02x%02x", dominantColor.R, dominantColor.G, dominantColor.B), nil
}
