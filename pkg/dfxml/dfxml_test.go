package dfxml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ostafen/fatprobe/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadVolumes(t *testing.T) {
	var buf bytes.Buffer

	w := dfxml.NewDFXMLWriter(&buf)
	err := w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package: "fatprobe",
			Version: "test",
		},
		Source: dfxml.Source{
			ImageFilename: "disk.img",
			SectorSize:    512,
			ImageSize:     1 << 20,
		},
	})
	require.NoError(t, err)

	volumes := []dfxml.VolumeObject{
		{
			Offset: 0,
			FSType: "FAT",
			Params: []dfxml.Param{
				{Name: "bytes_per_sector", Value: "512"},
				{Name: "media", Value: "-8"},
			},
			ByteRuns: &dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{
					{Offset: 16384, ImgOffset: 16384, Length: 1024000},
				},
			},
		},
		{
			Offset: 1048576,
			FSType: "exFAT",
			Params: []dfxml.Param{
				{Name: "volume_length", Value: "18446744073709551615"},
			},
		},
	}
	for _, vol := range volumes {
		require.NoError(t, w.WriteVolume(vol))
	}
	require.NoError(t, w.Close())

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `xmloutputversion="1.0"`)
	require.Contains(t, out, "<dfxml")
	require.Contains(t, out, "</dfxml>")
	require.Contains(t, out, "Volume Report")

	read, err := dfxml.ReadVolumes(&buf)
	require.NoError(t, err)
	require.Len(t, read, 2)

	require.Equal(t, uint64(0), read[0].Offset)
	require.Equal(t, "FAT", read[0].FSType)
	require.Equal(t, volumes[0].Params, read[0].Params)
	require.NotNil(t, read[0].ByteRuns)
	require.Equal(t, volumes[0].ByteRuns.Runs, read[0].ByteRuns.Runs)

	require.Equal(t, uint64(1048576), read[1].Offset)
	require.Equal(t, "exFAT", read[1].FSType)
	require.Equal(t, volumes[1].Params, read[1].Params)
	require.Nil(t, read[1].ByteRuns)
}

func TestGetExecEnv(t *testing.T) {
	env := dfxml.GetExecEnv()
	require.NotEmpty(t, env.OS)
	require.NotEmpty(t, env.Arch)
	require.NotEmpty(t, env.Start)
}
