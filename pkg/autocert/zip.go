package autocert

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func addFileToZip(archive *zip.Writer, filePath, archivePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return nil // Skip directories
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = archivePath
	header.Method = zip.Deflate

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}

	fileReader, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer fileReader.Close()

	_, err = io.Copy(writer, fileReader)
	return err
}

func createZipArchive(zipFile string) (*os.File, *zip.Writer, error) {
	zipWriter, err := os.Create(zipFile)
	if err != nil {
		return nil, nil, err
	}

	archive := zip.NewWriter(zipWriter)
	return zipWriter, archive, nil
}

// ZipFiles bundles the given files into zipFile, flattened to their base names.
func ZipFiles(inFiles []string, zipFile string) error {
	zipWriter, archive, err := createZipArchive(zipFile)
	if err != nil {
		return err
	}
	defer zipWriter.Close()

	for _, filePath := range inFiles {
		if err := addFileToZip(archive, filePath, filepath.Base(filePath)); err != nil {
			archive.Close()
			return fmt.Errorf("adding %s to archive: %w", filePath, err)
		}
	}

	return archive.Close()
}
