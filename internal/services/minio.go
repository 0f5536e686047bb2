package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"

	"sakado_back_end/internal/database"
)

const ProductImagesBucket = "sakado-images"

// UploadProductImage stocke une image produit dans MinIO sous product_id/filename
func UploadProductImage(productID gocql.UUID, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("%s/%s", productID.String(), filepath.Base(file.Filename))

	_, err = database.MinIO.PutObject(context.Background(), ProductImagesBucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), ProductImagesBucket, objectName)
	return url, nil
}

// RemoveProductImage supprime une image du bucket produits
func RemoveProductImage(objectName string) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO non initialisé")
	}
	return database.MinIO.RemoveObject(context.Background(), ProductImagesBucket, objectName,
		minio.RemoveObjectOptions{})
}
