package main

// indexHTML is the upload UI served at /. Kept as a const so the binary is
// self-contained, no static dir to ship alongside it.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Talking Head Generator</title>
  <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 font-sans text-gray-900 p-6 max-w-4xl mx-auto">
  <div class="mb-8">
    <h1 class="text-3xl font-bold text-gray-900 mb-2">Talking Head Generator</h1>
    <p class="text-gray-600">Upload a source image and an audio clip to generate a talking-head video</p>
  </div>

  <div class="bg-white rounded-xl shadow-sm border border-gray-200 p-6 mb-6">
    <form id="genForm" class="space-y-4">
      <div>
        <label class="block text-sm font-semibold text-gray-700 mb-2">Source image</label>
        <p class="text-sm text-gray-500 mb-3">png, jpg, jpeg, bmp, tiff or webp</p>
        <input id="sourceImage" name="source_image" type="file" accept="image/*"
               class="block w-full text-sm text-gray-500 file:mr-4 file:py-2 file:px-4 file:rounded-lg file:border-0 file:text-sm file:font-medium file:bg-blue-50 file:text-blue-700 hover:file:bg-blue-100 file:cursor-pointer" />
      </div>
      <div>
        <label class="block text-sm font-semibold text-gray-700 mb-2">Audio clip</label>
        <p class="text-sm text-gray-500 mb-3">wav, mp3, m4a, flac or ogg</p>
        <input id="audio" name="audio" type="file" accept="audio/*"
               class="block w-full text-sm text-gray-500 file:mr-4 file:py-2 file:px-4 file:rounded-lg file:border-0 file:text-sm file:font-medium file:bg-emerald-50 file:text-emerald-700 hover:file:bg-emerald-100 file:cursor-pointer" />
      </div>
      <button type="submit" class="px-6 py-2 bg-blue-600 text-white rounded-lg hover:bg-blue-700 transition-colors font-medium">
        Generate
      </button>
    </form>
    <div class="mt-4 p-3 bg-amber-50 border border-amber-200 rounded-lg">
      <p class="text-sm text-amber-800">
        <span class="font-medium">Note:</span> generation is synchronous and can take a while.
        Finished videos also appear below and under <span class="font-mono bg-amber-100 px-1 rounded">/download/…</span>
      </p>
    </div>
    <div id="genResult" class="mt-6" style="display:none;"></div>
  </div>

  <div class="bg-white rounded-xl shadow-sm border border-gray-200 p-6 mb-6">
    <div class="flex items-center justify-between mb-4">
      <h2 class="text-xl font-bold text-gray-900">Generated videos</h2>
      <button id="refreshBtn" class="px-4 py-1.5 bg-gray-100 text-gray-700 rounded-lg hover:bg-gray-200 transition-colors text-sm font-medium">
        Refresh
      </button>
    </div>
    <div id="fileRows" class="space-y-3"></div>
  </div>

<script>
const genForm = document.getElementById('genForm');
const genResult = document.getElementById('genResult');
const fileRows = document.getElementById('fileRows');

genForm.addEventListener('submit', async function(e) {
  e.preventDefault();
  const img = document.getElementById('sourceImage').files[0];
  const aud = document.getElementById('audio').files[0];
  if (!img || !aud) { alert('Pick both an image and an audio file'); return; }
  const fd = new FormData();
  fd.append('source_image', img, img.name);
  fd.append('audio', aud, aud.name);
  genResult.style.display = 'block';
  genResult.innerHTML = '<div class="text-gray-500 text-center py-4">Generating…</div>';
  const res = await fetch('/inference', { method: 'POST', body: fd });
  if (!res.ok) {
    let msg = 'request failed';
    try { msg = (await res.json()).error || msg; } catch (_) {}
    genResult.innerHTML = '<div class="text-red-600 p-4 bg-red-50 border border-red-200 rounded-lg">'+escapeHTML(msg)+'</div>';
    return;
  }
  const blob = await res.blob();
  const url = URL.createObjectURL(blob);
  genResult.innerHTML = '<video controls class="w-full rounded-lg border border-gray-200 mb-3"></video>' +
    '<a class="inline-flex items-center px-4 py-2 bg-green-600 text-white rounded-lg hover:bg-green-700 transition-colors font-medium" download="talking_head.mp4"></a>';
  genResult.querySelector('video').src = url;
  const a = genResult.querySelector('a');
  a.href = url; a.textContent = 'Download video';
  loadFiles();
});

async function loadFiles() {
  const res = await fetch('/files');
  if (!res.ok) return;
  const data = await res.json();
  const files = data.files || [];
  if (files.length === 0) {
    fileRows.innerHTML = '<div class="text-gray-500 text-center py-4">No videos yet</div>';
    return;
  }
  fileRows.innerHTML = files.map(function(f) {
    return '<div class="flex items-center justify-between py-3 border-b border-gray-100 last:border-b-0">' +
      '<div><span class="font-mono text-sm text-gray-900">'+escapeHTML(f.filename)+'</span>' +
      '<span class="ml-3 text-xs text-gray-500">'+fmtSize(f.size)+' · '+escapeHTML(f.created)+'</span></div>' +
      '<a href="'+f.download_url+'" download class="px-3 py-1.5 bg-blue-600 text-white text-sm rounded-lg hover:bg-blue-700 transition-colors">Download</a>' +
      '</div>';
  }).join('');
}

document.getElementById('refreshBtn').addEventListener('click', loadFiles);
loadFiles();

function fmtSize(n) {
  if (n > 1048576) return (n/1048576).toFixed(1)+' MB';
  if (n > 1024) return (n/1024).toFixed(1)+' KB';
  return n+' B';
}
function escapeHTML(s){ return (s||'').replace(/[&<>"']/g, function(c){ return {"&":"&amp;","<":"&lt;",">":"&gt;","\"":"&quot;","'":"&#39;"}[c]; }); }
</script>
</body>
</html>`
