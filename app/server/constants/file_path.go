package constants

// 商品图片文件
const (
	ImagePathPrefix = "images/"
)
