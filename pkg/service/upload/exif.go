package upload

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dsoprea/go-exif/v3"
	heicexif "github.com/dsoprea/go-heic-exif-extractor"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure"
	pngstructure "github.com/dsoprea/go-png-image-structure"
	tiffstructure "github.com/dsoprea/go-tiff-image-structure"
	riimage "github.com/dsoprea/go-utility/image"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// photoInfo 是从 EXIF 中保留下来的拍摄信息
type photoInfo struct {
	Camera  string
	TakenAt string // RFC3339，未知时为空
}

type exifParser interface {
	Parse(rs io.ReadSeeker, size int) (riimage.MediaContext, error)
}

// getExifParser 返回按文件结构解析 EXIF 的解析器，没有对应格式时返回 nil
func getExifParser(ext string) exifParser {
	switch ext {
	case ".jpg", ".jpeg":
		return jpegstructure.NewJpegMediaParser()
	case ".png":
		return pngstructure.NewPngMediaParser()
	case ".tif", ".tiff":
		return tiffstructure.NewTiffMediaParser()
	case ".heic", ".heif", ".avif":
		return heicexif.NewHeicExifMediaParser()
	}
	return nil
}

// hasExif 可能携带 EXIF 的格式
func hasExif(ext string) bool {
	return ext == ".webp" || getExifParser(ext) != nil
}

// searchExif 先按文件结构解析，失败时在整个文件中搜索 EXIF 头
func searchExif(data []byte, ext string) ([]byte, error) {
	if p := getExifParser(ext); p != nil {
		if mc, err := p.Parse(bytes.NewReader(data), len(data)); err == nil {
			if _, rawExif, err := mc.Exif(); err == nil && len(rawExif) > 0 {
				return rawExif, nil
			}
		}
	}
	return exif.SearchAndExtractExif(data)
}

// extractPhotoInfo 必须在缩放之前调用，重新编码后 EXIF 会丢失
func extractPhotoInfo(data []byte, ext string) photoInfo {
	var info photoInfo

	rawExif, err := searchExif(data, ext)
	if err != nil {
		if !errors.Is(err, exif.ErrNoExif) {
			log.Printf("[UploadService] 搜索 EXIF 失败: %v", err)
		}
		return info
	}
	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		log.Printf("[UploadService] 解析 EXIF 失败: %v", err)
		return info
	}

	tags := make(map[string]string, len(entries))
	for _, tag := range entries {
		if tag.TagName == "" {
			continue
		}
		if v := strings.TrimSpace(strings.ReplaceAll(tag.FormattedFirst, "\x00", "")); v != "" {
			tags[tag.TagName] = v
		}
	}

	maker, model := tags["Make"], tags["Model"]
	switch {
	case maker != "" && model != "" && !strings.HasPrefix(model, maker):
		info.Camera = maker + " " + model
	case model != "":
		info.Camera = model
	default:
		info.Camera = maker
	}

	for _, name := range []string{"DateTimeOriginal", "CreateDate", "DateTime"} {
		if v, ok := tags[name]; ok {
			if t, err := time.Parse(exifTimeLayout, v); err == nil {
				info.TakenAt = t.Format(time.RFC3339)
				break
			}
		}
	}
	return info
}
